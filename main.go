package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"veo-studio/modules/bridge"
	"veo-studio/modules/common/config"
	"veo-studio/modules/common/logger"
	"veo-studio/modules/common/metrics"
	"veo-studio/modules/web"
)

const serviceName = "veo-studio"

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

// newRouter - 라우터 구성. upstream 은 테스트에서 fake 로 교체 가능
func newRouter(cfg *config.Config, upstream bridge.Upstream, reg *prometheus.Registry, zlog *zap.Logger) *mux.Router {
	collector := metrics.NewCollector(cfg.MetricsNamespace, reg)
	service := bridge.NewService(cfg, upstream, collector, zlog)

	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	bridge.NewHandler(service, zlog).RegisterRoutes(r)
	web.NewHandler().RegisterRoutes(r)

	return r
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zlog.Sync()

	upstream, err := bridge.NewUpstream(cfg, zlog)
	if err != nil {
		zlog.Fatal("❌ Failed to create upstream", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(cfg, upstream, reg, zlog),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// generation 은 최대 MaxDuration 까지 걸릴 수 있음
		WriteTimeout: cfg.MaxDuration + 30*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		zlog.Info("🚀 Veo Studio server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("model", cfg.Model),
			zap.String("transport", cfg.Transport),
			zap.Duration("max_duration", cfg.MaxDuration),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zlog.Info("🛑 Shutting down, waiting for in-flight generations")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MaxDuration)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("Shutdown did not complete", zap.Error(err))
	}
}
