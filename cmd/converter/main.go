// cmd/converter/main.go
package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vcollos/camara/internal/api/handlers"
	"github.com/vcollos/camara/internal/api/responses"
	"github.com/vcollos/camara/internal/config"
	"github.com/vcollos/camara/internal/core/converter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Falha ao carregar a configuração: ", err)
	}

	logger, err := responses.InitLogger(cfg.Log.Level)
	if err != nil {
		log.Fatal("Falha ao iniciar o logger: ", err)
	}
	defer logger.Sync()

	refDate, _ := cfg.ReferenceDate()
	converterService := converter.NewService(logger, converter.Options{
		Encoding:      cfg.Export.Encoding,
		Separator:     cfg.SeparatorRune(),
		Workers:       cfg.Batch.Workers,
		ReferenceDate: refDate,
		Extended:      cfg.Export.Extended,
	})
	camaraHandler := handlers.NewCamaraHandler(converterService)

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()

	camaraHandler.Register(router.Group("/api/v1"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "camara-converter"})
	})

	port := cfg.Server.Port
	logger.Info("🚀 Conversor da câmara iniciado", zap.String("port", port), zap.String("encoding", converterService.Charset()))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Falha ao iniciar o servidor de conversão", zap.Error(err))
	}
}
