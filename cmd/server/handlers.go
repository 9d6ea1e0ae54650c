package main

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rhyrak/lecture-scheduler/internal/apperrors"
	"github.com/rhyrak/lecture-scheduler/internal/config"
	"github.com/rhyrak/lecture-scheduler/internal/csvio"
	"github.com/rhyrak/lecture-scheduler/internal/logger"
	"github.com/rhyrak/lecture-scheduler/internal/metrics"
	"github.com/rhyrak/lecture-scheduler/internal/report"
	"github.com/rhyrak/lecture-scheduler/internal/scheduler"
	"github.com/rhyrak/lecture-scheduler/internal/store"
	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

type server struct {
	cfg     *config.Config
	runs    *store.Store
	metrics *metrics.Service
	log     *zap.Logger
	policy  *scheduler.Configuration
	pending sync.WaitGroup
}

func newServer(cfg *config.Config, runs *store.Store, m *metrics.Service, log *zap.Logger) *server {
	return &server{
		cfg:     cfg,
		runs:    runs,
		metrics: m,
		log:     log,
		policy:  scheduler.NewDefaultConfiguration(),
	}
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(s.log))

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	r.GET("/schedule", s.handleGetSchedule)
	r.POST("/schedule", s.handlePostSchedule)
	r.GET("/schedule/:id", s.handleGetScheduleWithId)
	r.GET("/schedule/:id/failures", s.handleGetFailures)
	r.GET("/schedule/:id/pdf", s.handleGetPDF)
	r.DELETE("/schedule/:id", s.handleDeleteScheduleWithId)
	return r
}

// wait blocks until every background run has been stored.
func (s *server) wait() {
	s.pending.Wait()
}

func respondError(c *gin.Context, err error) {
	e := apperrors.FromError(err)
	c.AbortWithStatusJSON(e.Status, gin.H{"error": e})
}

func (s *server) handleGetSchedule(c *gin.Context) {
	runs, err := s.runs.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": runs})
}

func (s *server) handleGetScheduleWithId(c *gin.Context) {
	run, err := s.runs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": run.Data, "status": run.Status})
}

func (s *server) handleGetFailures(c *gin.Context) {
	run, err := s.runs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": run.Failures, "status": run.Status})
}

func (s *server) handleGetPDF(c *gin.Context) {
	run, err := s.runs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(run.PDF) == 0 {
		respondError(c, apperrors.Clone(apperrors.ErrNotFound, "pdf not available"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+run.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", run.PDF)
}

func (s *server) handleDeleteScheduleWithId(c *gin.Context) {
	id := c.Param("id")
	if err := s.runs.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// handlePostSchedule validates the uploaded inputs, records the run and
// allocates it in the background. Missing rooms or preferences fall back to
// the configured files, then to the built-in tables.
func (s *server) handlePostSchedule(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidInput.Code, http.StatusBadRequest, "expected multipart form"))
		return
	}
	if len(form.File["sessions"]) == 0 {
		respondError(c, apperrors.Clone(apperrors.ErrInvalidInput, "missing file: sessions"))
		return
	}

	delim := s.cfg.Delim()
	var sessions []*model.Session
	if err := withUpload(form.File["sessions"][0], func(r io.Reader) (err error) {
		sessions, err = csvio.LoadSessions(r, delim)
		return err
	}); err != nil {
		respondError(c, err)
		return
	}

	rooms, err := s.rooms(form, delim)
	if err != nil {
		respondError(c, err)
		return
	}
	prefs, err := s.preferences(form)
	if err != nil {
		respondError(c, err)
		return
	}

	id := uuid.NewString()
	if err := s.runs.Create(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.generate(id, sessions, rooms, prefs)
	}()

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func withUpload(fh *multipart.FileHeader, fn func(io.Reader) error) error {
	f, err := fh.Open()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidInput.Code, http.StatusBadRequest, "failed to read upload "+fh.Filename)
	}
	defer f.Close()
	return fn(f)
}

func (s *server) rooms(form *multipart.Form, delim rune) ([]*model.Room, error) {
	if files := form.File["rooms"]; len(files) != 0 {
		var rooms []*model.Room
		err := withUpload(files[0], func(r io.Reader) (err error) {
			rooms, err = csvio.LoadRooms(r, delim)
			return err
		})
		return rooms, err
	}
	if _, err := os.Stat(s.cfg.Input.RoomsFile); err == nil {
		return csvio.LoadRoomsFile(s.cfg.Input.RoomsFile, delim)
	}
	return model.DefaultRooms(), nil
}

func (s *server) preferences(form *multipart.Form) (map[string][]int, error) {
	if files := form.File["preferences"]; len(files) != 0 {
		var prefs map[string][]int
		err := withUpload(files[0], func(r io.Reader) (err error) {
			prefs, err = config.ParseRoomPreferences(r)
			if err != nil {
				err = apperrors.Wrap(err, apperrors.ErrInvalidInput.Code, http.StatusBadRequest, "invalid preferences")
			}
			return err
		})
		return prefs, err
	}
	if _, err := os.Stat(s.cfg.Input.PreferencesFile); err == nil {
		return config.LoadRoomPreferences(s.cfg.Input.PreferencesFile)
	}
	return scheduler.DefaultPreferences(), nil
}

// generate runs one allocation pass with its own calendar and stores the
// outputs. A failed audit marks the run failed.
func (s *server) generate(id string, sessions []*model.Session, rooms []*model.Room, prefs map[string][]int) {
	ctx := context.Background()
	log := s.log.With(zap.String("run_id", id))
	start := time.Now()

	allocator := scheduler.NewAllocator(s.policy, scheduler.NewRoomIndex(rooms, prefs), log, s.metrics)
	schedule := allocator.Allocate(sessions)
	valid, audit := scheduler.Validate(schedule, allocator.Calendar(), s.policy)

	res, err := render(schedule, audit, s.cfg.Export.PDF)
	switch {
	case err != nil:
		s.finish(log, start, metrics.RunFailed, s.runs.Fail(ctx, id, err.Error()))
	case !valid:
		s.finish(log, start, metrics.RunFailed, s.runs.Fail(ctx, id, audit))
	default:
		s.finish(log, start, metrics.RunSuccess, s.runs.Complete(ctx, id, res))
	}
}

func (s *server) finish(log *zap.Logger, start time.Time, status string, err error) {
	elapsed := time.Since(start)
	s.metrics.ObserveRun(status, elapsed)
	if err != nil {
		log.Error("failed to store run", zap.Error(err))
		return
	}
	log.Info("run finished", zap.String("status", status), zap.Duration("elapsed", elapsed))
}

func render(schedule *model.Schedule, audit string, pdf bool) (store.Result, error) {
	res := store.Result{Report: audit}
	var err error
	if res.Data, err = csvio.ExportScheduleString(schedule); err != nil {
		return res, err
	}
	if res.Failures, err = csvio.ExportFailuresString(schedule); err != nil {
		return res, err
	}
	if pdf {
		if res.PDF, err = report.NewPDFRenderer("Lecture schedule").Render(schedule); err != nil {
			return res, err
		}
	}
	return res, nil
}
