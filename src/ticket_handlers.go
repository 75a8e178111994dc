package main

import (
	"context"
	"errors"
	"etb/src/common"
	"etb/src/db"
	"etb/src/lib"
	"etb/src/models"
	"etb/src/types"
	"etb/src/utils"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func sagaErrorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrEventNotFound), errors.Is(err, types.ErrTicketNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrEventNotAvailable),
		errors.Is(err, types.ErrEventAlreadyStarted),
		errors.Is(err, types.ErrInvalidPrice),
		errors.Is(err, types.ErrInvalidTransition),
		errors.Is(err, types.ErrTicketAlreadyUsed):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrPaymentRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrPaymentUnavailable), errors.Is(err, types.ErrQRIssuance):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func ticketHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/tickets/purchase", func(ctx *gin.Context) {
			var body types.PurchaseTicketRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			saga := common.GetTicketSaga()
			result, err := saga.PurchaseTicket(ctx.Request.Context(), &body)
			if err != nil {
				log.Printf("Error purchasing ticket for Event [%d]: %s\n", body.EventID, err.Error())
				ctx.JSON(sagaErrorStatus(err), gin.H{"success": false, "error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{
				"success":     true,
				"ticket_id":   result.TicketID,
				"payment_id":  result.PaymentID,
				"status":      result.Status,
				"qr_code_url": result.QRCodeURL,
			})
		}).
		PATCH("/tickets/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateTicketStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			saga := common.GetTicketSaga()
			ticket, err := saga.UpdateTicketStatus(ctx.Request.Context(), params.ID, body.Status)
			if err != nil {
				log.Printf("Error updating status of Ticket [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(sagaErrorStatus(err), gin.H{"success": false, "error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "data": ticket})
		}).
		// Kept for old confirmation callers; new integrations go through
		// the status endpoint.
		PATCH("/tickets/:id/confirm", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			saga := common.GetTicketSaga()
			ticket, err := saga.ConfirmTicket(ctx.Request.Context(), params.ID)
			if err != nil {
				log.Printf("Error confirming Ticket [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(sagaErrorStatus(err), gin.H{"success": false, "error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "data": ticket})
		}).
		GET("/tickets", func(ctx *gin.Context) {
			var query types.PaginationQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var total int64
			if err := d.Model(&models.Ticket{}).Count(&total).Error; err != nil {
				log.Printf("Error counting Tickets: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			var tickets []models.Ticket
			if err := d.
				Scopes(utils.PageScope(&query)).
				Preload("Event").
				Order("created_at desc").
				Find(&tickets).Error; err != nil {
				log.Printf("Error retrieving Tickets: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": utils.Paginate(tickets, query.Page, query.Limit, total)})
		}).
		GET("/tickets/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var ticket models.Ticket
			d := db.GetDb()
			if err := d.
				Where(&models.Ticket{ID: params.ID}).
				Preload("Event").
				First(&ticket).
				Error; err != nil {
				if errors.Is(gorm.ErrRecordNotFound, err) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrTicketNotFound.Error()})
					return
				}
				log.Printf("Error retrieving Ticket [%d]: %s\n", params.ID, err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ticket})
		}).
		GET("/tickets/:id/qr", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if rd := lib.GetRedisClient(); rd != nil {
				cacheKey := fmt.Sprintf("ticketqr_%d", params.ID)
				url, err := rd.Get(context.Background(), cacheKey).Result()
				if err == nil && url != "" {
					ctx.JSON(http.StatusOK, gin.H{"url": url})
					return
				}
				if err != nil && !errors.Is(redis.Nil, err) {
					log.Printf("Error reading QR url from cache: %s\n", err.Error())
				}
			}
			var ticket models.Ticket
			d := db.GetDb()
			if err := d.
				Where(&models.Ticket{ID: params.ID}).
				First(&ticket).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrTicketNotFound.Error()})
				return
			}
			if ticket.QRCodeURL == nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "ticket has no QR code yet"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"url": *ticket.QRCodeURL})
		}).
		POST("/tickets/:id/validate", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			err := d.Transaction(func(tx *gorm.DB) error {
				var ticket models.Ticket
				if err := tx.
					Where(&models.Ticket{ID: params.ID}).
					First(&ticket).
					Error; err != nil {
					if errors.Is(gorm.ErrRecordNotFound, err) {
						return types.ErrTicketNotFound
					}
					return err
				}
				if ticket.Attended {
					return types.ErrTicketAlreadyUsed
				}
				return tx.
					Model(&models.Ticket{}).
					Where(&models.Ticket{ID: params.ID}).
					Update("attended", true).
					Error
			})
			if err != nil {
				log.Printf("Error validating Ticket [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(sagaErrorStatus(err), gin.H{"success": false, "error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		}).
		GET("/users/:userId/tickets", func(ctx *gin.Context) {
			var params types.UserTicketsURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var tickets []models.Ticket
			d := db.GetDb()
			if err := d.
				Where(&models.Ticket{UserID: params.UserID}).
				Preload("Event").
				Order("created_at desc").
				Find(&tickets).Error; err != nil {
				log.Printf("Error retrieving Tickets for user %s: %s\n", params.UserID, err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tickets})
		}).
		GET("/events/:id/tickets", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var query types.PaginationQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			d := db.GetDb()
			var total int64
			if err := d.
				Model(&models.Ticket{}).
				Where(&models.Ticket{EventID: params.ID}).
				Count(&total).Error; err != nil {
				log.Printf("Error counting Tickets for Event [%d]: %s\n", params.ID, err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			var tickets []models.Ticket
			if err := d.
				Where(&models.Ticket{EventID: params.ID}).
				Scopes(utils.PageScope(&query)).
				Order("created_at desc").
				Find(&tickets).Error; err != nil {
				log.Printf("Error retrieving Tickets for Event [%d]: %s\n", params.ID, err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": utils.Paginate(tickets, query.Page, query.Limit, total)})
		})
	return g
}
