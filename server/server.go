package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voxdemo/config"
	"voxdemo/core/deck"
	"voxdemo/db"
	"voxdemo/logger"
	"voxdemo/model"
	"voxdemo/repository"
	"voxdemo/storage"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.InfoLevel,
		OutputPath: "logs/voxdemo.log",
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	// 设置服务器超时
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 初始化 MinIO 客户端。对象存储不可用时退化为本地文件服务
	if err := storage.InitMinio(); err != nil {
		logger.Warn("MinIO unavailable, narration assets served from local disk only",
			logger.ErrorField(err))
	}

	// Connect to the database
	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	if err := db.AutoMigrateModels(&model.Recording{}, &model.DemoSession{}); err != nil {
		logger.Fatal("Failed to migrate models", logger.ErrorField(err))
	}

	// Connect to Redis
	if err := db.ConnectRedis(cfg); err != nil {
		logger.Fatal("Failed to connect to Redis", logger.ErrorField(err))
	}
	defer db.CloseRedis()
	logger.Info("Successfully connected to Redis")

	// Create necessary directories if they don't exist
	ensureDirExists(cfg.AudioDir)
	ensureDirExists(cfg.RecordingsDir)

	demoDeck := deck.Default()
	recordingRepo := repository.NewGormRecordingRepository(db.GormDB)
	sessionRepo := repository.NewGormSessionRepository(db.GormDB)

	// 初始化处理器
	deckHandler := NewDeckHandler(demoDeck)
	recordingHandler := NewRecordingHandler(recordingRepo, cfg)
	sessionHandler := NewSessionHandler(demoDeck, sessionRepo)
	demoWSHandler := NewDemoWSHandler(demoDeck, sessionRepo)
	audioHandler := NewAudioHandler(cfg)

	// 使用 gorilla/mux 创建路由器
	router := mux.NewRouter()

	// 添加 CORS 中间件
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Range")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range, Content-Disposition")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// 演示剧本相关的API端点
	router.HandleFunc("/api/deck", deckHandler.GetDeckHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/deck/timestamps", deckHandler.GetTimestampsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/deck/slides/{id}", deckHandler.GetSlideHandler).Methods(http.MethodGet)

	// 录制产物相关的API端点
	router.HandleFunc("/api/recordings", recordingHandler.ListRecordingsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/recordings/{filename}", recordingHandler.ServeRecordingHandler).Methods(http.MethodGet)

	// 演示会话归档端点
	router.HandleFunc("/api/sessions/end", sessionHandler.EndSessionHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/sessions/recent", sessionHandler.RecentSessionsHandler).Methods(http.MethodGet)

	// 实时演示会话
	router.HandleFunc("/ws/demo", demoWSHandler.HandleDemoWS)

	// 旁白音频服务
	router.PathPrefix("/audio/").Handler(audioHandler)

	// Frontend UI serving
	uiFileServer := http.FileServer(http.Dir(cfg.WebAppDir))
	router.PathPrefix("/").Handler(uiFileServer)

	server.Handler = router

	// 启动录制目录监听
	watcherCtx, cancelWatcher := context.WithCancel(context.Background())
	defer cancelWatcher()
	watcher := NewRecordingWatcher(cfg.RecordingsDir, recordingRepo)
	go watcher.Run(watcherCtx)

	// 创建一个通道来接收操作系统信号
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 在goroutine中启动服务器
	go func() {
		logger.Info("Server starting", logger.String("port", cfg.ServerPort))
		logger.Info("Demo deck via GET /api/deck, live session via /ws/demo")
		logger.Info("Narration assets via GET /audio/slide-{id}.mp3")
		logger.Info("Recordings via /api/recordings endpoints")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	// 等待中断信号
	<-stop
	logger.Info("Shutting down server...")
	cancelWatcher()

	// 优雅关闭服务器
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}

func ensureDirExists(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info("Creating directory", logger.String("path", path))
		if err := os.MkdirAll(path, 0755); err != nil {
			logger.Fatal("Failed to create directory",
				logger.String("path", path),
				logger.ErrorField(err))
		}
	} else if err != nil {
		logger.Fatal("Failed to check directory",
			logger.String("path", path),
			logger.ErrorField(err))
	}
}
