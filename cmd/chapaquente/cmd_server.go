package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/controllers"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/repositories"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/routes"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/services"
	"github.com/MatheusTerradasDEV/ChapaQuente/internal/board"
	"github.com/MatheusTerradasDEV/ChapaQuente/internal/server"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/router"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/ws"
)

// chapaquente serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// chapaquente route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Handlers are never invoked here, so the wiring can stay cold.
		b := board.New(nil, board.NewFeed())
		authService := services.NewAuthService(repositories.NewUserRepository(nil))
		productRepo := repositories.NewProductRepository(nil)
		orderService := services.NewOrderService(
			repositories.NewOrderRepository(nil),
			productRepo,
			b, nil, "",
		)

		r := router.New()
		routes.RegisterAPI(r, routes.Controllers{
			Auth:     controllers.NewAuthController(authService),
			Orders:   controllers.NewOrderController(orderService, b),
			Products: controllers.NewProductController(productRepo),
			Feed:     controllers.NewFeedController(ws.NewHub(), b),
		})

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
