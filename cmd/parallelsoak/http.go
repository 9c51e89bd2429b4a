// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/parallel/xmetrics"
	"github.com/xmidt-org/sallust"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	requestIDHeader   = "X-Request-Id"
	readHeaderTimeout = 10 * time.Second
)

// requestLogging is an Alice constructor that tags each request with an id and places a request
// scoped logger in its context.
func requestLogging(logger *zap.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(requestIDHeader)
			if len(requestID) == 0 {
				requestID = ksuid.New().String()
			}

			response.Header().Set(requestIDHeader, requestID)
			requestLogger := logger.With(
				zap.String("requestID", requestID),
				zap.String("path", request.URL.Path),
			)

			requestLogger.Debug("serving request")
			next.ServeHTTP(response, request.WithContext(sallust.With(request.Context(), requestLogger)))
		})
	}
}

// RouterIn holds the dependencies of the HTTP router.
type RouterIn struct {
	fx.In

	Logger   *zap.Logger
	Registry xmetrics.Registry
	Status   *status
}

func newRouter(in RouterIn) http.Handler {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(in.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.Handle("/health", in.Status).Methods(http.MethodGet)

	return alice.New(requestLogging(in.Logger)).Then(router)
}

func provideHTTP() fx.Option {
	return fx.Options(
		fx.Provide(newRouter),
		fx.Invoke(
			func(lc fx.Lifecycle, sc SoakConfig, handler http.Handler, logger *zap.Logger) {
				server := &http.Server{
					Addr:              sc.Address,
					Handler:           handler,
					ReadHeaderTimeout: readHeaderTimeout,
				}

				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						listener, err := net.Listen("tcp", server.Addr)
						if err != nil {
							return err
						}

						logger.Info("serving", zap.Stringer("address", listener.Addr()))
						go func() {
							if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
								logger.Error("server exited", zap.Error(err))
							}
						}()

						return nil
					},
					OnStop: server.Shutdown,
				})
			},
		),
	)
}
