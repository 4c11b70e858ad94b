package protocal

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/GityImran/ideation-lab/configs"
	httpAdapter "github.com/GityImran/ideation-lab/internal/adapters/input/http"
	"github.com/GityImran/ideation-lab/internal/application"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	configureLogger(configs.GetViper().App)
	logrus.Info(configs.GetViper().Env)

	session := sessionSettings(configs.GetViper().Session)

	// Wire up the hexagonal architecture layers
	// Output adapter (session store)
	store, err := newSessionStore(configs.GetViper(), session)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logrus.Errorln("Error when closing session store: ", err)
		}
	}()
	// Application services (use cases)
	srv := application.NewSessionService(store, session.BaseURL)
	sweeper, err := application.NewSweeper(store, session.SweepSchedule, session.Retention)
	if err != nil {
		return err
	}
	// Input adapter (HTTP handler)
	hdl := httpAdapter.New(srv)

	app := newApp(hdl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sweeper.Run(gctx)
	})
	g.Go(func() error {
		logrus.Println("Listerning on port: ", configs.GetViper().App.Port)
		return app.Listen(":" + configs.GetViper().App.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		logrus.Println("Gracefull shut down ...")
		return app.Shutdown()
	})
	return g.Wait()
}

func newApp(hdl *httpAdapter.HTTPHandler) *fiber.App {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))
	app.Get("/swagger/*", swagger.HandlerDefault) // default
	hdl.RegisterRoutes(app)
	return app
}

func configureLogger(app configs.App) {
	if app.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if app.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}
