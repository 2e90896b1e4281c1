// Package observers wires Eino callbacks that trace node execution.
package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"

	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

// NewGraphCallbacks returns a callbacks handler logging the lifecycle of
// every graph component for one invocation.
func NewGraphCallbacks() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, input einocb.CallbackInput) context.Context {
			if info != nil {
				logx.Debug().
					Str("node", info.Name).
					Str("component", string(info.Component)).
					Msg("node start")
			}
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, output einocb.CallbackOutput) context.Context {
			if info != nil {
				logx.Debug().
					Str("node", info.Name).
					Str("component", string(info.Component)).
					Msg("node end")
			}
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			if info != nil {
				logx.Error().
					Err(err).
					Str("node", info.Name).
					Msg("node error")
			}
			return ctx
		}).
		Build()
}
