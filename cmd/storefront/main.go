package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/di"
	"github.com/polkiloo/storefront/internal/pkg/auth"
)

func main() {
	if len(os.Args) == 3 && os.Args[1] == hashKeyCommand {
		if err := hashAdminKey(os.Stdout, auth.NewBcryptHasher(0), os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fx.New(
		fx.Provide(func() context.Context { return ctx }),
		di.Module(),
	)

	if err := run(ctx, app); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		stop()
		os.Exit(1)
	}
}
