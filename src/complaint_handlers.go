package main

import (
	"errors"
	"etb/src/db"
	"etb/src/models"
	"etb/src/types"
	"etb/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func complaintHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/complaints", func(ctx *gin.Context) {
			var body types.CreateComplaintRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			complaint := models.Complaint{
				FullName:       body.FullName,
				Address:        body.Address,
				DocumentType:   body.DocumentType,
				DocumentNumber: body.DocumentNumber,
				Phone:          body.Phone,
				Email:          body.Email,
				ParentGuardian: body.ParentGuardian,
				ItemType:       body.ItemType,
				ClaimAmount:    body.ClaimAmount,
				Description:    body.Description,
				Detail:         body.Detail,
				ComplaintType:  body.ComplaintType,
				Order:          body.Order,
			}
			d := db.GetDb()
			if err := d.Create(&complaint).Error; err != nil {
				log.Printf("Error creating Complaint: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": complaint})
		}).
		GET("/complaints", func(ctx *gin.Context) {
			var query types.PaginationQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var total int64
			if err := d.Model(&models.Complaint{}).Count(&total).Error; err != nil {
				log.Printf("Error counting Complaints: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			var complaints []models.Complaint
			if err := d.
				Scopes(utils.PageScope(&query)).
				Order("created_at desc").
				Find(&complaints).Error; err != nil {
				log.Printf("Error retrieving Complaints: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": utils.Paginate(complaints, query.Page, query.Limit, total)})
		}).
		GET("/complaints/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var complaint models.Complaint
			d := db.GetDb()
			if err := d.
				Where(&models.Complaint{ID: params.ID}).
				First(&complaint).
				Error; err != nil {
				if errors.Is(gorm.ErrRecordNotFound, err) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
					return
				}
				log.Printf("Error retrieving Complaint [%d]: %s\n", params.ID, err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": complaint})
		}).
		PATCH("/complaints/:id/attend", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			res := d.
				Model(&models.Complaint{}).
				Where(&models.Complaint{ID: params.ID}).
				Update("attended", true)
			if res.Error != nil {
				log.Printf("Error updating Complaint [%d]: %s\n", params.ID, res.Error.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		})
	return g
}
