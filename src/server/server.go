package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	app "photoserv/src/app"
	cfg "photoserv/src/configuration"
	db "photoserv/src/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the routes onto a gin engine. Everything under /albums
// and /user plus /auth/verify sits behind the credential middleware.
func NewRouter(config *cfg.Properties, auth *AuthHandler, albums *AlbumHandler, images *ImageHandler) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.Frontend.Origin},
		AllowMethods:     []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	pprof.Register(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	router.GET("/auth/google", auth.GoogleLogin)
	router.GET("/auth/google/callback", auth.GoogleCallback)
	router.POST("/auth/logout", auth.Logout)

	authorized := router.Group("/", auth.RequireAuth())
	authorized.GET("/auth/verify", auth.Verify)
	authorized.GET("/user/profile", auth.Profile)

	authorized.POST("/albums", albums.CreateAlbum)
	authorized.GET("/albums", albums.ListAlbums)
	authorized.GET("/albums/:albumId", albums.GetAlbum)
	authorized.POST("/albums/:albumId", albums.UpdateAlbum)
	authorized.POST("/albums/:albumId/share", albums.ShareAlbum)
	authorized.DELETE("/albums/:albumId", albums.DeleteAlbum)

	authorized.POST("/albums/:albumId/images", images.UploadImage)
	authorized.GET("/albums/:albumId/images", images.ListImages)
	authorized.GET("/albums/:albumId/images/favorites", images.ListFavorites)
	authorized.PUT("/albums/:albumId/images/:imageId/favorite", images.SetFavorite)
	authorized.POST("/albums/:albumId/images/:imageId/comments", images.AddComment)
	authorized.DELETE("/albums/:albumId/images/:imageId", images.DeleteImage)
	authorized.GET("/albums/:albumId/images/:imageId/url", images.GetImageURL)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return router
}

func RunServer(config *cfg.Properties, log *slog.Logger) error {
	creds := app.NewCredentialService(config.Auth.JWTSecret, config.Auth.CookieName, config.Auth.TokenTTL)

	media, err := app.NewMinioMediaClient(
		config.S3.Host,
		config.S3.AccessKey,
		config.S3.SecretKey,
		config.S3.Bucket,
		config.S3.PublicURL,
		config.S3.UseSSL)
	if err != nil {
		return fmt.Errorf("can not connect to media host: %w", err)
	}

	dataBase, err := db.NewDataBase(config)
	if err != nil {
		return fmt.Errorf("can not connect to database: %w", err)
	}
	defer func() {
		if err := dataBase.Close(context.Background()); err != nil {
			log.Error("database disconnect failed", "error", err)
		}
	}()

	auth, err := NewAuthHandler(config, creds, log)
	if err != nil {
		return err
	}

	albumRepo := dataBase.Albums()
	imageRepo := dataBase.Images()
	albums := NewAlbumHandler(albumRepo, imageRepo, media, log)
	images := NewImageHandler(albumRepo, imageRepo, media, log)

	router := NewRouter(config, auth, albums, images)

	log.Info("starting server", "port", config.Server.Port)
	return router.Run(fmt.Sprintf(":%s", config.Server.Port))
}
