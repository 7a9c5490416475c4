package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StudentLogins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "madrasa", Name: "student_logins_total", Help: "Student login attempts",
	}, []string{"result"})
	AdminLogins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "madrasa", Name: "admin_logins_total", Help: "Admin login attempts",
	}, []string{"result"})
	Uploads = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "madrasa", Name: "uploads_total", Help: "Stored file uploads",
	})
	Downloads = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "madrasa", Name: "downloads_total", Help: "Served file downloads",
	})
)

func init() {
	prometheus.MustRegister(StudentLogins, AdminLogins, Uploads, Downloads)
}

func Handler() http.Handler { return promhttp.Handler() }
