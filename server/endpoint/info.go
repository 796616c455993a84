package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/sessionauth/version"
)

var startTime = time.Now()

// InfoResponse is the body of the /info endpoint.
type InfoResponse struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Release   bool   `json:"is_release"`
	Uptime    string `json:"uptime"`
}

// Info reports build information for serviceName. It exposes nothing about
// configuration, so it is safe to leave unauthenticated.
func Info(serviceName string) gin.HandlerFunc {
	v := version.GetVersionInfo()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, InfoResponse{
			Service:   serviceName,
			Version:   v.Version,
			GitCommit: v.GitCommit,
			BuildTime: v.BuildTime,
			GoVersion: v.GoVersion,
			Release:   v.IsRelease,
			Uptime:    time.Since(startTime).Truncate(time.Second).String(),
		})
	}
}
