package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rainbow-dataspace/handshake-orchestrator/internal/appinit"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/controller"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/gateway"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/service"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/setup"
	"github.com/rainbow-dataspace/handshake-orchestrator/internal/simulator"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	var configPath string

	// Functions to be used by the cli helper
	setupFunc := getSetupFunc(&configPath)
	serveFunc := getServeFunc(&configPath)

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:    "setup",
				Aliases: []string{"i"},
				Usage:   "Register the asset, policy and contract definition on the provider",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "conf",
						Aliases:     []string{"c"},
						Value:       "serve.yaml",
						EnvVars:     []string{"RDO_CONF"},
						Destination: &configPath,
					},
				},
				Action: setupFunc,
			},
			{
				Name:    "serve",
				Aliases: []string{"s"},
				Usage:   "Start as server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "conf",
						Aliases:     []string{"c"},
						Value:       "serve.yaml",
						EnvVars:     []string{"RDO_CONF"},
						Destination: &configPath,
					},
				},
				Action: serveFunc,
			},
		},
	}

	// Run the cli helper
	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

func loadConfig(configPath string) (*appinit.ServerInfo, error) {
	serverInfo, err := appinit.LoadServerInfo(configPath)
	if err != nil {
		return nil, err
	}

	if err := serverInfo.Validate(); err != nil {
		return nil, err
	}

	return &serverInfo, nil
}

func getSetupFunc(configPath *string) func(c *cli.Context) error {
	// The func for subcommand "setup"
	return func(c *cli.Context) error {
		serverInfo, err := loadConfig(*configPath)
		if err != nil {
			return err
		}

		registrar := &setup.Registrar{
			Gateway: gateway.NewGateway(nil),
			Config:  serverInfo,
		}

		return registrar.RegisterAll()
	}
}

func getServeFunc(configPath *string) func(c *cli.Context) error {
	return func(c *cli.Context) error {
		serverInfo, err := loadConfig(*configPath)
		if err != nil {
			return err
		}

		table, err := serverInfo.Table()
		if err != nil {
			return err
		}

		gw := gateway.NewGateway(nil)

		// Instantiate the phase services around one shared service info
		serviceInfo := &service.Info{
			Gateway: gw,
			Table:   table,
			Config:  serverInfo,
		}
		handshakeSvc := service.NewHandshakeService(serviceInfo)

		// Instantiate the device simulator
		device, err := simulator.NewSimulator(serverInfo)
		if err != nil {
			return err
		}

		// Instantiate controllers
		handshakeController := &controller.HandshakeController{
			GroupName:    "/",
			HandshakeSvc: handshakeSvc,
		}

		telemetryController := &controller.TelemetryController{
			GroupName: "/",
			Simulator: device,
			Gateway:   gw,
			Config:    serverInfo,
		}

		deviceController := &controller.DeviceController{
			GroupName: "/",
			Simulator: device,
		}

		pingPongController := &controller.PingPongController{
			GroupName: "/",
		}

		// Register controller handlers
		router := gin.Default()
		router.Use(controller.CORSMiddleware())
		rootGroup := router.Group("/")
		controller.RegisterHandlers(rootGroup, handshakeController)
		controller.RegisterHandlers(rootGroup, telemetryController)
		controller.RegisterHandlers(rootGroup, deviceController)
		controller.RegisterHandlers(rootGroup, pingPongController)

		// Start the HTTP server
		httpServer := &http.Server{
			Addr:    fmt.Sprintf(":%v", serverInfo.Port),
			Handler: router,
		}

		chanError := make(chan error)
		go func() {
			if err := httpServer.ListenAndServe(); err != nil {
				chanError <- errors.Wrap(err, "unable to start the HTTP server")
			}
		}()

		// Listen Ctrl+C signals. On receiving a signal stops the app elegantly
		chanQuit := make(chan os.Signal, 1)
		signal.Notify(chanQuit, os.Interrupt)
		select {
		case err := <-chanError:
			return err
		case <-chanQuit:
			log.Infoln("Received an interrupt signal, shutting down...")

			// Stop the HTTP server elegantly
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				return errors.Wrap(err, "unable to stop the HTTP server")
			}
		}

		return nil
	}
}
