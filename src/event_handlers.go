package main

import (
	"encoding/base64"
	"errors"
	"etb/src/db"
	"etb/src/models"
	"etb/src/types"
	"etb/src/utils"
	"fmt"
	"log"
	"net/http"
	"time"

	awslib "etb/src/lib/aws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func uploadImage(folder, name string, file *types.SerializedFile) (url string, key string, err error) {
	content, err := base64.StdEncoding.DecodeString(file.Content)
	if err != nil {
		return "", "", err
	}
	key = fmt.Sprintf("%s/%s-%s", folder, slug.Make(name), uuid.NewString())
	url, err = awslib.S3UploadObject(key, content, file.Mimetype)
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events", func(ctx *gin.Context) {
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !body.EndDate.After(body.StartDate) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "end date must be after start date"})
				return
			}
			event := models.Event{
				Name:        body.Name,
				Description: body.Description,
				StartDate:   body.StartDate,
				EndDate:     body.EndDate,
				MemberPrice: body.MemberPrice,
				PublicPrice: body.PublicPrice,
				Status:      types.EVENT_ACTIVE,
			}
			if body.Image != nil {
				url, key, err := uploadImage("events", body.Name, body.Image)
				if err != nil {
					log.Printf("Error uploading event image: %s\n", err.Error())
					ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
					return
				}
				event.ImageURL = url
				event.ImageKey = key
			}
			d := db.GetDb()
			if err := d.Create(&event).Error; err != nil {
				log.Printf("Error creating Event: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": event})
		}).
		GET("/events", func(ctx *gin.Context) {
			var query types.PaginationQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var total int64
			if err := d.Model(&models.Event{}).Count(&total).Error; err != nil {
				log.Printf("Error counting Events: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			var events []models.Event
			if err := d.
				Scopes(utils.PageScope(&query)).
				Order("start_date desc").
				Find(&events).Error; err != nil {
				log.Printf("Error retrieving Events: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": utils.Paginate(events, query.Page, query.Limit, total)})
		}).
		GET("/events/available", func(ctx *gin.Context) {
			var events []models.Event
			d := db.GetDb()
			now := time.Now()
			if err := d.
				Where("status = ? AND start_date > ?", types.EVENT_ACTIVE, now).
				Order("start_date asc").
				Find(&events).Error; err != nil {
				log.Printf("Error retrieving available Events: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var event models.Event
			d := db.GetDb()
			if err := d.
				Where(&models.Event{ID: params.ID}).
				First(&event).
				Error; err != nil {
				if errors.Is(gorm.ErrRecordNotFound, err) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrEventNotFound.Error()})
					return
				}
				log.Printf("Error retrieving Event [%d]: %s\n", params.ID, err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		PATCH("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var event models.Event
			d := db.GetDb()
			if err := d.
				Where(&models.Event{ID: params.ID}).
				First(&event).
				Error; err != nil {
				if errors.Is(gorm.ErrRecordNotFound, err) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrEventNotFound.Error()})
					return
				}
				ctx.Status(http.StatusBadRequest)
				return
			}
			if body.Name != nil {
				event.Name = *body.Name
			}
			if body.Description != nil {
				event.Description = *body.Description
			}
			if body.StartDate != nil {
				event.StartDate = *body.StartDate
			}
			if body.EndDate != nil {
				event.EndDate = *body.EndDate
			}
			if !event.EndDate.After(event.StartDate) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "end date must be after start date"})
				return
			}
			if body.MemberPrice != nil {
				event.MemberPrice = *body.MemberPrice
			}
			if body.PublicPrice != nil {
				event.PublicPrice = *body.PublicPrice
			}
			if body.Image != nil {
				url, key, err := uploadImage("events", event.Name, body.Image)
				if err != nil {
					log.Printf("Error uploading event image: %s\n", err.Error())
					ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
					return
				}
				if event.ImageKey != "" {
					if derr := awslib.S3DeleteObject(event.ImageKey); derr != nil {
						log.Printf("Could not delete old image [%s]: %s\n", event.ImageKey, derr.Error())
					}
				}
				event.ImageURL = url
				event.ImageKey = key
			}
			if err := d.Save(&event).Error; err != nil {
				log.Printf("Error updating Event [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		PATCH("/events/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateEventStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			res := d.
				Model(&models.Event{}).
				Where(&models.Event{ID: params.ID}).
				Update("status", body.Status)
			if res.Error != nil {
				log.Printf("Error updating status of Event [%d]: %s\n", params.ID, res.Error.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrEventNotFound.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		})
	return g
}
