package main

import (
	"errors"
	"etb/src/db"
	"etb/src/models"
	"etb/src/types"
	"log"
	"net/http"

	awslib "etb/src/lib/aws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bannerHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/banners", func(ctx *gin.Context) {
			var body types.CreateBannerRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			url, key, err := uploadImage("banners", body.Title, body.Image)
			if err != nil {
				log.Printf("Error uploading banner image: %s\n", err.Error())
				ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
			banner := models.Banner{
				ImageURL:    url,
				ImageKey:    key,
				Title:       body.Title,
				Description: body.Description,
				Link:        body.Link,
				LinkType:    body.LinkType,
				IsActive:    true,
				Order:       body.Order,
				StartDate:   body.StartDate,
				EndDate:     body.EndDate,
			}
			if body.IsActive != nil {
				banner.IsActive = *body.IsActive
			}
			d := db.GetDb()
			if err := d.Create(&banner).Error; err != nil {
				log.Printf("Error creating Banner: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": banner})
		}).
		GET("/banners", func(ctx *gin.Context) {
			var query struct {
				Active bool `form:"active"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			tx := d.Model(&models.Banner{})
			if query.Active {
				tx = tx.Where(&models.Banner{IsActive: true})
			}
			var banners []models.Banner
			if err := tx.Order(`"order" asc, created_at desc`).Find(&banners).Error; err != nil {
				log.Printf("Error retrieving Banners: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": banners})
		}).
		PATCH("/banners/order", func(ctx *gin.Context) {
			var body types.OrderBannersRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ids := make([]uint, 0, len(body.Banners))
			for _, b := range body.Banners {
				ids = append(ids, b.ID)
			}
			d := db.GetDb()
			var banners []models.Banner
			if err := d.Where("id IN ?", ids).Find(&banners).Error; err != nil {
				log.Printf("Error retrieving Banners for ordering: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if len(banners) != len(ids) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "one or more banners do not exist"})
				return
			}
			for _, b := range banners {
				if !b.IsActive {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "only active banners can be ordered"})
					return
				}
			}
			err := d.Transaction(func(tx *gorm.DB) error {
				for _, b := range body.Banners {
					if err := tx.
						Model(&models.Banner{}).
						Where(&models.Banner{ID: b.ID}).
						Update("order", b.Order).
						Error; err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				log.Printf("Error ordering Banners: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		}).
		PATCH("/banners/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateBannerRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var banner models.Banner
			d := db.GetDb()
			if err := d.
				Where(&models.Banner{ID: params.ID}).
				First(&banner).
				Error; err != nil {
				if errors.Is(gorm.ErrRecordNotFound, err) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
					return
				}
				ctx.Status(http.StatusBadRequest)
				return
			}
			if body.Title != nil {
				banner.Title = *body.Title
			}
			if body.Description != nil {
				banner.Description = *body.Description
			}
			if body.Link != nil {
				banner.Link = *body.Link
			}
			if body.LinkType != nil {
				banner.LinkType = *body.LinkType
			}
			if body.IsActive != nil {
				banner.IsActive = *body.IsActive
			}
			if body.Order != nil {
				banner.Order = body.Order
			}
			if body.StartDate != nil {
				banner.StartDate = body.StartDate
			}
			if body.EndDate != nil {
				banner.EndDate = body.EndDate
			}
			if body.Image != nil {
				url, key, err := uploadImage("banners", banner.Title, body.Image)
				if err != nil {
					log.Printf("Error uploading banner image: %s\n", err.Error())
					ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
					return
				}
				if banner.ImageKey != "" {
					if derr := awslib.S3DeleteObject(banner.ImageKey); derr != nil {
						log.Printf("Could not delete old image [%s]: %s\n", banner.ImageKey, derr.Error())
					}
				}
				banner.ImageURL = url
				banner.ImageKey = key
			}
			if err := d.Save(&banner).Error; err != nil {
				log.Printf("Error updating Banner [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": banner})
		}).
		DELETE("/banners/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var banner models.Banner
			d := db.GetDb()
			if err := d.
				Where(&models.Banner{ID: params.ID}).
				First(&banner).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
				return
			}
			if err := d.Delete(&models.Banner{}, params.ID).Error; err != nil {
				log.Printf("Error deleting Banner [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if banner.ImageKey != "" {
				if err := awslib.S3DeleteObject(banner.ImageKey); err != nil {
					log.Printf("Could not delete image [%s]: %s\n", banner.ImageKey, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		})
	return g
}
