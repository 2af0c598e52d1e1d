package metrics

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feednest_posts_created_total",
		Help: "Posts created.",
	})
	PostsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feednest_posts_deleted_total",
		Help: "Posts deleted.",
	})
	PostsLiked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feednest_posts_liked_total",
		Help: "Likes added to posts.",
	})
	PostsUnliked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feednest_posts_unliked_total",
		Help: "Likes removed from posts.",
	})
	CommentsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feednest_comments_added_total",
		Help: "Comments added to posts.",
	})
	CommentsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feednest_comments_removed_total",
		Help: "Comments removed from posts.",
	})
)

type HTTPServer struct {
	srv *http.Server
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// NewHTTPServer serves /metrics and /health on a side listener, away from
// the API port.
func NewHTTPServer(addr string) (*HTTPServer, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: addr, Handler: mux}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, err
	}

	slog.Info("metrics server listening", "addr", srv.Addr)
	go srv.Serve(ln)

	return &HTTPServer{srv: srv}, nil
}
