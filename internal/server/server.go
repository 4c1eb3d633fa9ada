package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	gql "github.com/99designs/gqlgen/graphql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tournevent/commerce-ups/internal/graphql"
	"github.com/tournevent/commerce-ups/internal/telemetry"
	"github.com/tournevent/commerce-ups/pkg/shipper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server is the HTTP server for the shipping rate service.
type Server struct {
	port     int
	logger   *otelzap.Logger
	resolver *graphql.Resolver
	schema   *ast.Schema
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, registry *shipper.Registry, logger *otelzap.Logger, metrics *telemetry.Metrics) *Server {
	return &Server{
		port:     cfg.Port,
		logger:   logger,
		resolver: graphql.NewResolver(registry, logger, metrics),
		schema:   graphql.Schema(),
	}
}

// Handler returns the HTTP routes served by the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/graphql", s.handleGraphQL)
	return mux
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrors(w, http.StatusMethodNotAllowed, gqlerror.Errorf("method not allowed, use POST"))
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, gqlerror.Errorf("invalid JSON: %s", err))
		return
	}

	doc, errs := gqlparser.LoadQuery(s.schema, req.Query)
	if len(errs) > 0 {
		writeErrors(w, http.StatusUnprocessableEntity, errs...)
		return
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		writeErrors(w, http.StatusUnprocessableEntity, gqlerror.Errorf("operation %q not found", req.OperationName))
		return
	}

	vars, err := validator.VariableValues(s.schema, op, req.Variables)
	if err != nil {
		writeErrors(w, http.StatusUnprocessableEntity, gqlerror.Wrap(err))
		return
	}

	s.logger.Ctx(r.Context()).Debug("GraphQL request", zap.String("operation", op.Name))

	data, execErrs := s.execute(r.Context(), op.SelectionSet, vars)
	writeJSON(w, http.StatusOK, &gql.Response{Data: data, Errors: execErrs})
}

// execute resolves each top-level query field and shapes the result to
// the requested selection.
func (s *Server) execute(ctx context.Context, set ast.SelectionSet, vars map[string]any) (json.RawMessage, gqlerror.List) {
	var errs gqlerror.List
	result := object{}

	for _, field := range collectFields(set, vars) {
		key := responseKey(field)
		if field.Name == "__typename" {
			result = append(result, member{key, "Query"})
			continue
		}

		value, err := s.resolveField(ctx, field, vars)
		if err != nil {
			errs = append(errs, &gqlerror.Error{
				Err:     err,
				Message: err.Error(),
				Path:    ast.Path{ast.PathName(key)},
			})
			result = append(result, member{key, nil})
			continue
		}

		shaped, err := shape(value, field.SelectionSet, vars)
		if err != nil {
			errs = append(errs, gqlerror.Wrap(err))
			result = append(result, member{key, nil})
			continue
		}
		result = append(result, member{key, shaped})
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, append(errs, gqlerror.Wrap(err))
	}
	return data, errs
}

func (s *Server) resolveField(ctx context.Context, field *ast.Field, vars map[string]any) (any, error) {
	q := s.resolver.Query()
	args := field.ArgumentMap(vars)

	switch field.Name {
	case "health":
		return q.Health(ctx)
	case "carriers":
		return q.Carriers(ctx)
	case "services":
		carrier, _ := args["carrier"].(string)
		return q.Services(ctx, carrier)
	case "rates":
		var input graphql.LookupInput
		if err := decodeArgument(args["input"], &input); err != nil {
			return nil, err
		}
		return q.Rates(ctx, input)
	case "transitTime":
		var input graphql.LookupInput
		if err := decodeArgument(args["input"], &input); err != nil {
			return nil, err
		}
		return q.TransitTime(ctx, input)
	default:
		return nil, fmt.Errorf("unknown field %q", field.Name)
	}
}

func decodeArgument(value any, target any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding argument: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decoding argument: %w", err)
	}
	return nil
}

// shape projects a resolved value onto a selection set.
func shape(value any, set ast.SelectionSet, vars map[string]any) (any, error) {
	if len(set) == 0 || value == nil {
		return value, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return project(generic, set, vars), nil
}

func project(value any, set ast.SelectionSet, vars map[string]any) any {
	switch v := value.(type) {
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = project(v[i], set, vars)
		}
		return out
	case map[string]any:
		obj := object{}
		for _, field := range collectFields(set, vars) {
			key := responseKey(field)
			if field.Name == "__typename" {
				obj = append(obj, member{key, field.ObjectDefinition.Name})
				continue
			}
			obj = append(obj, member{key, project(v[field.Name], field.SelectionSet, vars)})
		}
		return obj
	default:
		return value
	}
}

// collectFields flattens fragments and drops fields excluded by @skip or @include.
func collectFields(set ast.SelectionSet, vars map[string]any) []*ast.Field {
	var fields []*ast.Field
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			if included(sel.Directives, vars) {
				fields = append(fields, sel)
			}
		case *ast.InlineFragment:
			if included(sel.Directives, vars) {
				fields = append(fields, collectFields(sel.SelectionSet, vars)...)
			}
		case *ast.FragmentSpread:
			if included(sel.Directives, vars) && sel.Definition != nil {
				fields = append(fields, collectFields(sel.Definition.SelectionSet, vars)...)
			}
		}
	}
	return fields
}

func included(directives ast.DirectiveList, vars map[string]any) bool {
	if d := directives.ForName("skip"); d != nil {
		if skip, _ := d.ArgumentMap(vars)["if"].(bool); skip {
			return false
		}
	}
	if d := directives.ForName("include"); d != nil {
		if include, _ := d.ArgumentMap(vars)["if"].(bool); !include {
			return false
		}
	}
	return true
}

func responseKey(field *ast.Field) string {
	if field.Alias != "" {
		return field.Alias
	}
	return field.Name
}

// object is a JSON object that keeps its members in selection order.
type object []member

type member struct {
	key   string
	value any
}

func (o object) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, m := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, value...)
	}
	return append(buf, '}'), nil
}

func writeErrors(w http.ResponseWriter, status int, errs ...*gqlerror.Error) {
	writeJSON(w, status, &gql.Response{Errors: errs})
}

func writeJSON(w http.ResponseWriter, status int, resp *gql.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
