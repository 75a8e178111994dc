package main

import (
	"encoding/csv"
	"errors"
	"etb/src/db"
	"etb/src/models"
	"etb/src/types"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func reportHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reports", func(ctx *gin.Context) {
			var body types.CreateReportRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var existing models.Report
			err := d.
				Where(&models.Report{Code: body.Code}).
				First(&existing).
				Error
			if err == nil {
				ctx.JSON(http.StatusConflict, gin.H{"error": "a report with this code already exists"})
				return
			}
			if !errors.Is(gorm.ErrRecordNotFound, err) {
				log.Printf("Error checking Report code [%s]: %s\n", body.Code, err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			report := models.Report{
				Name:        body.Name,
				Code:        body.Code,
				IsActive:    true,
				Description: body.Description,
			}
			if body.IsActive != nil {
				report.IsActive = *body.IsActive
			}
			if err := d.Create(&report).Error; err != nil {
				log.Printf("Error creating Report: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": report})
		}).
		GET("/reports", func(ctx *gin.Context) {
			var reports []models.Report
			d := db.GetDb()
			if err := d.
				Where(&models.Report{IsActive: true}).
				Order("name asc").
				Find(&reports).Error; err != nil {
				log.Printf("Error retrieving Reports: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reports})
		}).
		GET("/reports/events/:id/tickets.csv", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var tickets []models.Ticket
			d := db.GetDb()
			if err := d.
				Where(&models.Ticket{EventID: params.ID}).
				Order("created_at asc").
				Find(&tickets).Error; err != nil {
				log.Printf("Error retrieving Tickets for Event [%d]: %s\n", params.ID, err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			filename := fmt.Sprintf("event-%d-tickets.csv", params.ID)
			ctx.Header("Content-Type", "text/csv")
			ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
			w := csv.NewWriter(ctx.Writer)
			w.Write([]string{"ID", "USER_NAME", "USER_EMAIL", "PAYMENT_METHOD", "PRICE_PAID", "STATUS", "ATTENDED", "CREATED"})
			for _, t := range tickets {
				w.Write([]string{
					fmt.Sprintf("%d", t.ID),
					t.UserName,
					t.UserEmail,
					string(t.PaymentMethod),
					t.PricePaid.StringFixed(2),
					string(t.Status),
					fmt.Sprintf("%t", t.Attended),
					t.CreatedAt.Format(time.RFC3339),
				})
			}
			w.Flush()
			if err := w.Error(); err != nil {
				log.Printf("Error writing CSV for Event [%d]: %s\n", params.ID, err.Error())
			}
		}).
		GET("/reports/sales", func(ctx *gin.Context) {
			var query struct {
				StartDate string `form:"start_date"`
				EndDate   string `form:"end_date"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			tx := d.Model(&models.Ticket{}).Where("status = ?", types.TICKET_CONFIRMED)
			if query.StartDate != "" {
				start, err := time.Parse(time.RFC3339, query.StartDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				tx = tx.Where("created_at >= ?", start)
			}
			if query.EndDate != "" {
				end, err := time.Parse(time.RFC3339, query.EndDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				tx = tx.Where("created_at < ?", end)
			}
			var rows []struct {
				PaymentMethod types.PaymentMethod
				Count         int64
				Total         decimal.Decimal
			}
			err := tx.
				Select("payment_method, COUNT(*) as count, SUM(price_paid) as total").
				Group("payment_method").
				Scan(&rows).
				Error
			if err != nil {
				log.Printf("Error building sales report: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			summary := make([]gin.H, 0, len(rows))
			for _, r := range rows {
				summary = append(summary, gin.H{
					"payment_method": r.PaymentMethod,
					"count":          r.Count,
					"total":          r.Total,
				})
			}
			ctx.JSON(http.StatusOK, gin.H{"data": summary})
		})
	return g
}
