package health

import (
	"net/http"
	"runtime"

	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"

	"courrier/backend/internal/storage"
)

// HealthChecker 健康检查器
type HealthChecker struct {
	health healthcheck.Handler
	store  storage.Store
	logger *zap.Logger
}

// NewHealthChecker 创建健康检查器
func NewHealthChecker(store storage.Store, logger *zap.Logger) *HealthChecker {
	hc := &HealthChecker{
		health: healthcheck.NewHandler(),
		store:  store,
		logger: logger,
	}

	hc.addChecks()
	return hc
}

// addChecks 添加健康检查
func (hc *HealthChecker) addChecks() {
	// 登记册存储检查
	hc.health.AddLivenessCheck("registry", func() error {
		return hc.store.Health()
	})

	// 协程数量检查，防止泄漏
	hc.health.AddLivenessCheck("goroutine-count",
		healthcheck.GoroutineCountCheck(10*runtime.NumCPU()+100))

	hc.health.AddReadinessCheck("registry", func() error {
		return hc.store.Health()
	})
}

// LiveHandler 返回存活检查处理器
func (hc *HealthChecker) LiveHandler() http.HandlerFunc {
	return hc.health.LiveEndpoint
}

// ReadyHandler 返回就绪检查处理器
func (hc *HealthChecker) ReadyHandler() http.HandlerFunc {
	return hc.health.ReadyEndpoint
}
