package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"anoa.com/apiplayground/internal/entity"
	profileDto "anoa.com/apiplayground/internal/modules/profile/dto"
	profile "anoa.com/apiplayground/internal/modules/profile/service"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Profile{},
	)
}

// SampleProfiles is the data inserted into an empty store.
func SampleProfiles() []profileDto.ProfileRequest {
	return []profileDto.ProfileRequest{
		{
			Name:      "John Doe",
			Email:     "john.doe@example.com",
			Education: stringPtr("Computer Science, MIT"),
			Skills:    []string{"JavaScript", "Python", "React", "Node.js"},
			Projects: []profileDto.ProjectInput{
				{
					Title:       "E-commerce Platform",
					Description: "Full-stack web application for online shopping",
					Links:       []string{"https://github.com/johndoe/ecommerce", "https://shop-demo.com"},
				},
				{
					Title:       "Data Analysis Tool",
					Description: "Python tool for analyzing customer behavior",
					Links:       []string{"https://github.com/johndoe/data-analysis"},
				},
			},
		},
		{
			Name:      "Jane Smith",
			Email:     "jane.smith@example.com",
			Education: stringPtr("Software Engineering, Stanford"),
			Skills:    []string{"Python", "Machine Learning", "TensorFlow", "SQL"},
			Projects: []profileDto.ProjectInput{
				{
					Title:       "ML Prediction Model",
					Description: "Machine learning model for stock price prediction",
					Links:       []string{"https://github.com/janesmith/ml-stocks"},
				},
				{
					Title:       "Web Scraper",
					Description: "Python web scraper for data collection",
					Links:       []string{"https://github.com/janesmith/webscraper"},
				},
			},
		},
		{
			Name:      "Mike Johnson",
			Email:     "mike.johnson@example.com",
			Education: stringPtr("Information Systems, UC Berkeley"),
			Skills:    []string{"Java", "Spring Boot", "Docker", "AWS"},
			Projects: []profileDto.ProjectInput{
				{
					Title:       "Microservices Architecture",
					Description: "Scalable microservices system using Spring Boot",
					Links:       []string{"https://github.com/mikej/microservices"},
				},
			},
		},
	}
}

// SeedProfiles inserts the sample profiles through the regular creation
// path, but only when the store is empty.
func SeedProfiles(ctx context.Context, svc profile.ProfileService) error {
	count, err := svc.CountProfiles(ctx)
	if err != nil {
		return fmt.Errorf("checking existing profiles: %w", err)
	}

	if count > 0 {
		slog.Info("database already contains data, skipping seed", "profiles", count)
		return nil
	}

	slog.Info("seeding database with sample data")
	for _, req := range SampleProfiles() {
		if _, err := svc.CreateProfile(ctx, req); err != nil {
			return fmt.Errorf("seeding %s: %w", req.Email, err)
		}
	}

	slog.Info("database seeded successfully")
	return nil
}

func stringPtr(s string) *string {
	return &s
}
