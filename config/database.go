package config

import (
	"fmt"

	model "pitchday/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func InitDB(host, port, user, password, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "judging.",
			SingularTable: false,
		},
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	x := db.Exec(`CREATE SCHEMA IF NOT EXISTS judging`)
	if x.Error != nil {
		return nil, x.Error
	}

	err = db.AutoMigrate(
		&model.Event{},
		&model.Criterion{},
		&model.Team{},
		&model.Judge{},
		&model.Evaluation{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
