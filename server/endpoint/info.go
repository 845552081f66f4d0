package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/kbukum/visitnote/version"
)

var startTime = time.Now()

// Info reports build information, uptime and host load. Host figures are
// omitted when the platform does not expose them.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"service": serviceName,
			"build":   version.Get(),
			"uptime":  time.Since(startTime).Round(time.Second).String(),
		}
		if host := hostStats(c); len(host) > 0 {
			body["host"] = host
		}
		c.JSON(http.StatusOK, body)
	}
}

func hostStats(c *gin.Context) gin.H {
	ctx := c.Request.Context()
	host := gin.H{}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		host["memory_used_percent"] = vm.UsedPercent
		host["memory_total_mb"] = vm.Total / 1024 / 1024
	}
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		host["cpu_percent"] = pct[0]
	}
	return host
}
