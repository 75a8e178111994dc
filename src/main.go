package main

import (
	"etb/src/boot"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"

	"etb/src/types"
)

const (
	apiPrefix string = "/api/v1"
)

var paymentMethodValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(types.PaymentMethod)
	if !ok {
		return false
	}
	switch value {
	case types.PAYMENT_VOUCHER, types.PAYMENT_POINTS, types.PAYMENT_GATEWAY:
		return true
	}
	return false
}

var ticketStatusValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(types.TicketStatus)
	if !ok {
		return false
	}
	switch value {
	case types.TICKET_PENDING, types.TICKET_CONFIRMED, types.TICKET_CANCELLED:
		return true
	}
	return false
}

var eventStatusValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(types.EventStatus)
	if !ok {
		return false
	}
	switch value {
	case types.EVENT_ACTIVE, types.EVENT_INACTIVE, types.EVENT_FINISHED, types.EVENT_CANCELLED:
		return true
	}
	return false
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("paymentmethod", paymentMethodValidatorFunc)
		v.RegisterValidation("ticketstatus", ticketStatusValidatorFunc)
		v.RegisterValidation("eventstatus", eventStatusValidatorFunc)
	}
}

func maintenanceModeMiddleware(r *gin.Engine) *gin.Engine {
	r.Use(func(ctx *gin.Context) {
		if os.Getenv("MAINTENANCE_MODE") == "true" {
			ctx.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		ctx.Next()
	})
	return r
}

func setupRouter() *gin.Engine {
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))
	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func apiv1Group(r *gin.Engine) *gin.RouterGroup {
	return r.Group(apiPrefix)
}

func registerHandlers(apiv1 *gin.RouterGroup) {
	ticketHandlers(apiv1)
	eventHandlers(apiv1)
	bannerHandlers(apiv1)
	leadHandlers(apiv1)
	complaintHandlers(apiv1)
	reportHandlers(apiv1)
}

func main() {
	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   "logs/api.log",
		MaxSize:    50,
		MaxBackups: 7,
		MaxAge:     30,
	}))

	registerValidators()
	boot.InitDb()
	boot.InitBroker()
	boot.InitScheduler()
	defer boot.StopScheduler()

	r := setupRouter()
	r = maintenanceModeMiddleware(r)
	apiv1 := apiv1Group(r)
	registerHandlers(apiv1)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %s\n", err.Error())
	}
}
