package boot

import (
	"etb/src/common"
	"etb/src/db"
	"etb/src/lib"
	"etb/src/models"
	"log"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Event{},
		&models.Ticket{},
		&models.Banner{},
		&models.Lead{},
		&models.Complaint{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitBroker() {
	go lib.KafkaCreateTopics("tickets-status")
}

func InitScheduler() {
	id, err := lib.CreateCronJob(common.ReportStuckTickets, 30*time.Minute)
	if err != nil {
		log.Printf("Error scheduling reconciliation job: %s\n", err.Error())
		return
	}
	log.Printf("Scheduled reconciliation job with ID %s\n", *id)
	sched, err := lib.GetScheduler()
	if err != nil {
		return
	}
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Printf("Error shutting down Scheduler: %s\n", err.Error())
	}
}
