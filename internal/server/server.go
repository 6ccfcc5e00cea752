// Package server exposes the NVRAM decoder over HTTP.
package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/moffa90/go-ofnvram/internal/logger"
	"github.com/moffa90/go-ofnvram/internal/report"
	"github.com/moffa90/go-ofnvram/internal/source"
	"github.com/moffa90/go-ofnvram/nvram"
)

// DefaultMaxImageSize is the upload limit used by the serve command.
const DefaultMaxImageSize = 16 << 20

// Options configures a Server.
type Options struct {
	// MaxImageSize bounds uploaded images before and after decompression.
	// Zero disables the check.
	MaxImageSize int64

	// Strict selects the strict trailing policy when a request does not say
	Strict bool

	// Bounded selects length-bounded partitions when a request does not say
	Bounded bool
}

type Server struct {
	log   logger.Logger
	opts  Options
	clock func() time.Time
}

func NewServer(log logger.Logger, opts Options) *Server {
	if log == nil {
		log = logger.Discard()
	}
	if opts.MaxImageSize < 0 {
		opts.MaxImageSize = 0
	}
	return &Server{
		log:   log,
		opts:  opts,
		clock: time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/decode", s.handleDecode)
}

// DecodeResponse is the body of a successful decode.
type DecodeResponse struct {
	ID      string         `json:"id"`
	Created int64          `json:"created"`
	Report  *report.Report `json:"report"`
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
}

type decodeQuery struct {
	strict  bool
	bounded bool
	noPairs bool
}

func (s *Server) parseQuery(c *echo.Context) (decodeQuery, error) {
	var (
		q   decodeQuery
		err error
	)
	if q.strict, err = boolParam(c, "strict", s.opts.Strict); err != nil {
		return q, err
	}
	if q.bounded, err = boolParam(c, "bounded", s.opts.Bounded); err != nil {
		return q, err
	}
	if q.noPairs, err = boolParam(c, "no_pairs", false); err != nil {
		return q, err
	}
	return q, nil
}

func (s *Server) handleDecode(c *echo.Context) error {
	q, err := s.parseQuery(c)
	if err != nil {
		if errors.Is(err, errInvalidRequest) {
			return writeBadRequest(c, err.Error())
		}
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}

	blob, err := source.FromReader(c.Request().Body, "upload", s.opts.MaxImageSize)
	if err != nil {
		if errors.Is(err, source.ErrTooLarge) {
			return writeError(c, http.StatusRequestEntityTooLarge, "image_too_large", err.Error())
		}
		return writeBadRequest(c, err.Error())
	}

	id := "dec_" + uuid.NewString()
	log := s.log.With("id", id)

	dec := nvram.NewDecoder(
		nvram.WithStrict(q.strict),
		nvram.WithBounded(q.bounded),
		nvram.WithLogger(log),
	)
	img, err := dec.Decode(blob.Data)
	if err != nil {
		log.Warn("decode failed", "size", len(blob.Data), "error", err)
		return writeError(c, http.StatusUnprocessableEntity, "decode_error", err.Error())
	}

	rep := report.Build(blob.Data, img, report.Options{
		Source:      blob.Name,
		Compression: blob.Compression,
		Policy:      dec.Policy(),
		NoPairs:     q.noPairs,
	})
	rep.ID = id

	log.Info("decoded image", "size", rep.Size, "partitions", len(rep.Partitions), "trailing", rep.TrailingBytes)
	return c.JSON(http.StatusOK, DecodeResponse{
		ID:      id,
		Created: s.clock().Unix(),
		Report:  rep,
	})
}

func boolParam(c *echo.Context, name string, def bool) (bool, error) {
	q := strings.TrimSpace(c.QueryParam(name))
	if q == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(q)
	if err != nil {
		return false, newInvalidRequest(name + ": expected a boolean, got " + strconv.Quote(q))
	}
	return v, nil
}
