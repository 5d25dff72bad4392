package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Blog{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Venue{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&BlogVenue{}); err != nil {
		return err
	}

	return nil
}
