package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"github.com/xhit/go-str2duration/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crowdpulse/pulsewatch"
	"github.com/crowdpulse/pulsewatch/download"
	"github.com/crowdpulse/pulsewatch/plot"
	"github.com/crowdpulse/pulsewatch/plot/indicator"
	"github.com/crowdpulse/pulsewatch/source"
	"github.com/crowdpulse/pulsewatch/storage"
	"github.com/crowdpulse/pulsewatch/tools"
	"github.com/crowdpulse/pulsewatch/tools/log"
	"github.com/crowdpulse/pulsewatch/tools/metrics"
)

var monitorFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "camera",
		Aliases:  []string{"c"},
		Usage:    "camera id",
		Required: true,
	},
	&cli.Float64Flag{
		Name:  "threshold",
		Usage: "initial engagement threshold [0,100]",
		Value: 50,
	},
	&cli.IntFlag{
		Name:  "capacity",
		Usage: "number of samples kept in the window",
		Value: 50,
	},
	&cli.Float64Flag{
		Name:  "band",
		Usage: "width of the neutral band around the threshold",
		Value: 10,
	},
	&cli.StringFlag{
		Name:  "db",
		Usage: "storage file for thresholds and events (*.sqlite uses SQLite, anything else BuntDB)",
	},
	&cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug logs",
	},
}

func main() {
	app := &cli.App{
		Name:     "pulsewatch",
		HelpName: "pulsewatch",
		Usage:    "Live engagement monitor with threshold segmentation",
		Commands: []*cli.Command{
			{
				Name:  "watch",
				Usage: "poll a monitoring backend and serve the live chart",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "backend",
						Aliases:  []string{"b"},
						Usage:    "base URL of the monitoring backend",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "interval",
						Usage: "poll interval (eg. 2s, 1m)",
						Value: "2s",
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "chart HTTP port",
						Value: 8080,
					},
					&cli.StringFlag{
						Name:    "telegram-token",
						Usage:   "telegram bot token",
						EnvVars: []string{"TELEGRAM_TOKEN"},
					},
					&cli.IntSliceFlag{
						Name:  "telegram-user",
						Usage: "telegram user allowed to talk to the bot",
					},
					&cli.Float64Flag{
						Name:  "alert-above",
						Usage: "notify once when the window average reaches this value",
					},
					&cli.Float64Flag{
						Name:  "alert-below",
						Usage: "notify once when the window average drops below this value",
					},
				}, monitorFlags...),
				Action: watch,
			},
			{
				Name:  "replay",
				Usage: "replay a recorded CSV through the monitor and print a summary",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "CSV file (timestamp,value[,camera])",
						Required: true,
					},
				}, monitorFlags...),
				Action: replay,
			},
			{
				Name:  "download",
				Usage: "record samples from a monitoring backend into a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "backend",
						Aliases:  []string{"b"},
						Usage:    "base URL of the monitoring backend",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "camera",
						Aliases:  []string{"c"},
						Usage:    "camera id",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "duration",
						Usage: "how long to record (eg. 30m, 1d)",
						Value: "1h",
					},
					&cli.StringFlag{
						Name:  "interval",
						Usage: "poll interval (eg. 2s, 1m)",
						Value: "2s",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "skip the samples the backend already holds",
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "output CSV file",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					interval, err := str2duration.ParseDuration(c.String("interval"))
					if err != nil {
						return err
					}

					options := []download.Option{download.WithPollInterval(interval)}
					if c.Bool("no-history") {
						options = append(options, download.WithoutHistory())
					}

					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()

					feed := source.NewHTTP(c.String("backend"))
					return download.NewDownloader(feed).Download(ctx, c.String("camera"),
						c.String("duration"), c.String("output"), options...)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func settingsFrom(c *cli.Context) pulsewatch.Settings {
	settings := pulsewatch.DefaultSettings(c.String("camera"))
	settings.InitialThreshold = c.Float64("threshold")
	settings.WindowCapacity = c.Int("capacity")
	settings.Band = c.Float64("band")
	return settings
}

func openStorage(path string) (storage.Storage, error) {
	switch {
	case path == "":
		return storage.FromMemory()
	case strings.HasSuffix(path, ".sqlite"):
		return storage.FromSQL(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
	default:
		return storage.FromFile(path)
	}
}

func logLevel(c *cli.Context) log.Level {
	if c.Bool("debug") {
		return log.DebugLevel
	}
	return log.InfoLevel
}

func watch(c *cli.Context) error {
	settings := settingsFrom(c)

	interval, err := str2duration.ParseDuration(c.String("interval"))
	if err != nil {
		return err
	}
	settings.PollInterval = interval

	if token := c.String("telegram-token"); token != "" {
		settings.Telegram = pulsewatch.TelegramSettings{
			Enabled: true,
			Token:   token,
			Users:   c.IntSlice("telegram-user"),
		}
	}

	db, err := openStorage(c.String("db"))
	if err != nil {
		return err
	}

	stats := metrics.New()
	chart, err := plot.NewChart(
		plot.WithPort(c.Int("port")),
		plot.WithMetrics(stats),
		plot.WithCustomIndicators(
			indicator.Average(10, "#ff7f0e"),
		),
	)
	if err != nil {
		return err
	}

	feed := source.NewHTTP(c.String("backend"))
	monitor, err := pulsewatch.NewMonitor(settings,
		pulsewatch.WithStorage(db),
		pulsewatch.WithThresholdStore(feed),
		pulsewatch.WithMetrics(stats),
		pulsewatch.WithArtifactSubscription(chart),
		pulsewatch.WithLogLevel(logLevel(c)),
	)
	if err != nil {
		return err
	}
	plot.WithThresholdSetter(monitor)(chart)
	plot.WithCameraSwitcher(monitor)(chart)

	if c.IsSet("alert-above") || c.IsSet("alert-below") {
		scheduler := tools.NewScheduler(monitor)
		if c.IsSet("alert-above") {
			scheduler.AverageAbove(c.Float64("alert-above"))
		}
		if c.IsSet("alert-below") {
			scheduler.AverageBelow(c.Float64("alert-below"))
		}
		monitor.SubscribeArtifact(scheduler)
	}

	go func() {
		if err := chart.Start(); err != nil {
			log.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return monitor.Run(ctx, feed)
}

func replay(c *cli.Context) error {
	settings := settingsFrom(c)

	feed, err := source.NewCSV(c.String("file"), settings.Camera)
	if err != nil {
		return err
	}

	samples := feed.Samples(settings.Camera)
	if len(samples) == 0 {
		return fmt.Errorf("no samples for camera %s in %s (cameras: %s)",
			settings.Camera, c.String("file"), strings.Join(feed.Cameras(), ", "))
	}

	db, err := openStorage(c.String("db"))
	if err != nil {
		return err
	}

	monitor, err := pulsewatch.NewMonitor(settings,
		pulsewatch.WithStorage(db),
		pulsewatch.WithLogLevel(logLevel(c)),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	progressBar := progressbar.Default(int64(len(samples)))
	monitor.Replay(samples, func() {
		if err := progressBar.Add(1); err != nil {
			log.Warnf("update progresbar fail: %s", err.Error())
		}
	})
	if err := progressBar.Close(); err != nil {
		log.Warnf("close progresbar fail: %s", err.Error())
	}
	log.Infof("%d samples replayed in %s", len(samples), time.Since(start).Round(time.Millisecond))

	return monitor.Summary(os.Stdout)
}
