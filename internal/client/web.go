package client

import (
	"context"
	"embed"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
)

//go:embed templates/index.html
var templateFS embed.FS

var page = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"formatNumber": formatNumber}).
	ParseFS(templateFS, "templates/index.html"))

var operationLabels = map[calculator.Operation]string{
	calculator.OpAdd:      "Add (+)",
	calculator.OpSubtract: "Subtract (-)",
	calculator.OpMultiply: "Multiply (×)",
	calculator.OpDivide:   "Divide (÷)",
}

// Service is everything the web page needs from the calculation service.
type Service interface {
	Calculator
	Version(ctx context.Context) (VersionInfo, error)
}

type operationOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	Form       *Form
	Operations []operationOption
	Backend    *VersionInfo
}

// NewWebHandler serves the calculator form backed by svc. info is what the
// web client itself reports on /health.
func NewWebHandler(svc Service, info handlers.ServiceInfo) http.Handler {
	h := &webHandler{svc: svc}

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/", h.show)
	r.Post("/", h.submit)
	r.Get("/health", handlers.Health(info))

	return r
}

type webHandler struct {
	svc Service

	mu      sync.Mutex
	backend *VersionInfo
}

// show renders an empty form. It is the only place the backend version is
// fetched; submissions reuse the cached value so a rejected input never
// reaches the service.
func (h *webHandler) show(w http.ResponseWriter, r *http.Request) {
	h.refreshBackend(r.Context())
	h.render(w, r, NewForm())
}

// refreshBackend fetches the backend version until one fetch succeeds.
func (h *webHandler) refreshBackend(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.backend != nil {
		return
	}

	info, err := h.svc.Version(ctx)
	if err != nil {
		observability.LoggerWithTrace(ctx).Debug("backend version unavailable", zap.Error(err))
		return
	}
	h.backend = &info
}

func (h *webHandler) cachedBackend() *VersionInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.backend
}

func (h *webHandler) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	form := NewForm()
	form.Operand1 = r.PostForm.Get("num1")
	form.Operand2 = r.PostForm.Get("num2")

	op, err := calculator.ParseOperation(r.PostForm.Get("operation"))
	if err != nil {
		form.Error = calculator.Message(err)
		h.render(w, r, form)
		return
	}
	form.Operation = op

	form.Submit(ctx, h.svc)

	if form.Error != "" {
		logger.Info("calculation not shown",
			zap.String("operation", op.String()),
			zap.String("error", form.Error),
			zap.String("request_id", observability.RequestIDFromContext(ctx)),
		)
	}

	h.render(w, r, form)
}

func (h *webHandler) render(w http.ResponseWriter, r *http.Request, form *Form) {
	ctx := r.Context()

	data := pageData{Form: form}
	for _, op := range calculator.Operations() {
		data.Operations = append(data.Operations, operationOption{
			Value:    op.String(),
			Label:    operationLabels[op],
			Selected: op == form.Operation,
		})
	}

	data.Backend = h.cachedBackend()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		observability.LoggerWithTrace(ctx).Error("render page", zap.Error(err))
	}
}

// formatNumber prints v without an exponent unless it is very large or very
// small.
func formatNumber(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
