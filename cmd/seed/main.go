package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shiftbook-dev/shiftbook/backend/internal/config"
	"github.com/shiftbook-dev/shiftbook/backend/internal/domain"
	"github.com/shiftbook-dev/shiftbook/backend/internal/repository"
	"github.com/shiftbook-dev/shiftbook/backend/internal/scheduler"
	"github.com/shiftbook-dev/shiftbook/backend/internal/seed"
	"github.com/shiftbook-dev/shiftbook/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var notify bool

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: seed a demo roster for the current week)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.BoolVar(&notify, "notify", false, "queue an account email for each inserted user")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object; ping to verify connectivity
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("please provide a valid user count")
			return
		}

		var mailChannel *amqp.Channel
		if notify {
			conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
			if err != nil {
				logger.Error("unable to connect to rabbitmq", slog.String("error", err.Error()))
				return
			}
			defer conn.Close()

			mailChannel, err = conn.Channel()
			if err != nil {
				logger.Error("unable to open channel", slog.String("error", err.Error()))
				return
			}
			defer mailChannel.Close()

			if _, err := mailChannel.QueueDeclare("notification_queue", true, false, false, false, nil); err != nil {
				logger.Error("unable to declare queue", slog.String("error", err.Error()))
				return
			}
		}

		cnt := n
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("unable to generate random user", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(context.Background(), user); err != nil {
				slog.Error("unable to insert user", slog.String("error", err.Error()))
				continue
			}

			if mailChannel != nil {
				queueAccountMail(mailChannel, cfg, user)
			}

			cnt--
		}

		slog.Info("users inserted", slog.Int("count", n-cnt))
	case 2:
		seed.SeedDemoWeek(scheduler.NewScheduler(repo, repo, nil, nil))
	default:
		slog.Error("unknown operation")
	}
}

// queueAccountMail is best effort, a failed publish only logs.
func queueAccountMail(ch *amqp.Channel, cfg *config.Config, user *domain.User) {
	mailMessage := domain.MailMessage{
		Type: "create_user",
		To:   user.Email,
		Data: domain.CreateUserMailData{
			FullName: user.FullName,
			Username: user.Username,
			Password: cfg.Seed.User.Password,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("unable to serialize account mail", slog.String("error", err.Error()))
		return
	}

	publishCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err = ch.PublishWithContext(
		publishCtx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
	if err != nil {
		slog.Error("unable to queue account mail", slog.String("to", user.Email), slog.String("error", err.Error()))
	}
}
