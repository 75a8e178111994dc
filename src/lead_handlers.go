package main

import (
	"encoding/csv"
	"etb/src/db"
	"etb/src/models"
	"etb/src/types"
	"etb/src/utils"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func leadHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/leads", func(ctx *gin.Context) {
			var body types.CreateLeadRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			lead := models.Lead{
				FullName: body.FullName,
				Email:    body.Email,
				Phone:    body.Phone,
				Message:  body.Message,
				Metadata: body.Metadata,
			}
			d := db.GetDb()
			if err := d.Create(&lead).Error; err != nil {
				log.Printf("Error creating Lead: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": lead})
		}).
		GET("/leads", func(ctx *gin.Context) {
			var query types.PaginationQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var total int64
			if err := d.Model(&models.Lead{}).Count(&total).Error; err != nil {
				log.Printf("Error counting Leads: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			var leads []models.Lead
			if err := d.
				Scopes(utils.PageScope(&query)).
				Order("created_at desc").
				Find(&leads).Error; err != nil {
				log.Printf("Error retrieving Leads: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": utils.Paginate(leads, query.Page, query.Limit, total)})
		}).
		GET("/leads/export.csv", func(ctx *gin.Context) {
			var query struct {
				StartDate string `form:"start_date"`
				EndDate   string `form:"end_date"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			tx := d.Model(&models.Lead{})
			if query.StartDate != "" {
				start, err := time.Parse(time.RFC3339, query.StartDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				tx = tx.Where("updated_at >= ?", start)
			}
			if query.EndDate != "" {
				end, err := time.Parse(time.RFC3339, query.EndDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				tx = tx.Where("updated_at < ?", end)
			}
			var leads []models.Lead
			if err := tx.Order("updated_at desc").Find(&leads).Error; err != nil {
				log.Printf("Error retrieving Leads for export: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.Header("Content-Type", "text/csv")
			ctx.Header("Content-Disposition", `attachment; filename="leads.csv"`)
			w := csv.NewWriter(ctx.Writer)
			w.Write([]string{"ID", "FULL_NAME", "EMAIL", "PHONE", "MESSAGE", "CREATED", "UPDATED"})
			for _, l := range leads {
				w.Write([]string{
					fmt.Sprintf("%d", l.ID),
					l.FullName,
					l.Email,
					l.Phone,
					l.Message,
					l.CreatedAt.Format(time.RFC3339),
					l.UpdatedAt.Format(time.RFC3339),
				})
			}
			w.Flush()
			if err := w.Error(); err != nil {
				log.Printf("Error writing leads CSV: %s\n", err.Error())
			}
		})
	return g
}
