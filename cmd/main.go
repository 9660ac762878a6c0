package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/kathamala/katha-backend/config"
	"github.com/kathamala/katha-backend/routes"
	"github.com/kathamala/katha-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	config.InitDB()
	config.EnsureSuperAdmin(config.DB)

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		services.InitRevoker(addr, os.Getenv("REDIS_PASSWORD"))
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Auth-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "static"
	}
	r.Static("/uploads", uploadDir)

	routes.SetupRouter(r, config.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server listening on port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Cannot start server: ", err)
	}
}
