package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/coastlinevibe/eubiosis/configs"
	"github.com/coastlinevibe/eubiosis/internal/adapter/cache"
	httpadapter "github.com/coastlinevibe/eubiosis/internal/adapter/http"
	"github.com/coastlinevibe/eubiosis/internal/adapter/kafka"
	"github.com/coastlinevibe/eubiosis/internal/adapter/queue"
	"github.com/coastlinevibe/eubiosis/internal/adapter/repo"
	"github.com/coastlinevibe/eubiosis/internal/checkout"
	"github.com/coastlinevibe/eubiosis/internal/logging"
	"github.com/coastlinevibe/eubiosis/internal/payment"
	"github.com/coastlinevibe/eubiosis/internal/pricing"
	"github.com/coastlinevibe/eubiosis/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	l := logging.Init(cfg.App.Name, cfg.App.LogFile)
	l.Info("funnel-api: starting up")

	// database: constructed once here and passed in explicitly, never
	// reached through package globals.
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		return nil, nil, err
	}

	// redis: session state between funnel calls
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	orderRepo := repo.NewMySQLOrderRepo(db)
	sessions := cache.NewRedisSessionStore(rdb, cfg.Session.TTL)

	// rabbitmq: mail pipeline. Optional at boot so a broker outage does not
	// take checkout down with it.
	var producer *queue.RabbitProducer
	var amqpConn *amqp091.Connection
	if conn, err := amqp091.Dial(cfg.Rabbit.URL); err != nil {
		l.Error("rabbitmq unavailable, order mails will lag", "err", err)
	} else if ch, err := conn.Channel(); err != nil {
		l.Error("rabbitmq channel failed", "err", err)
		_ = conn.Close()
	} else {
		amqpConn = conn
		if producer, err = queue.NewRabbitProducer(ch); err != nil {
			l.Error("rabbitmq topology failed", "err", err)
			producer = nil
		} else {
			setupMailSentConsumer(ch, orderRepo)
		}
	}

	// kafka: payment status sync
	group := setupKafkaListener(cfg, orderRepo)

	engine := pricing.NewEngine(cfg.Pricing)
	payRouter := payment.NewRouter(cfg.Payment)
	machine := checkout.NewMachine(cfg.Validation, payRouter)

	var events usecase.OrderEventPublisher
	if producer != nil {
		events = producer
	}
	submitUC := usecase.NewSubmitOrder(engine, machine, orderRepo, events)

	ch := httpadapter.NewCheckoutHandler(sessions, machine, engine, payRouter, submitUC)
	oh := httpadapter.NewOrderHandler(orderRepo)
	router := httpadapter.NewRouter(ch, oh)

	cleanup := func() {
		_ = db.Close()
		_ = rdb.Close()
		if amqpConn != nil {
			_ = amqpConn.Close()
		}
		if group != nil {
			_ = group.Close()
		}
	}

	return &App{Router: router}, cleanup, nil
}

func setupMailSentConsumer(ch *amqp091.Channel, orders usecase.OrderStatusWriter) {
	h := queue.NewMailSentHandler(orders)

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register("mail.sent.q", queue.JSONHandler[usecase.MailSentMsg]{HandleFunc: h.HandleMailSent})

	if err := router.Start(); err != nil {
		logging.New("rmq").Error("mail.sent consumer failed to start", "err", err)
	}
}

func setupKafkaListener(cfg configs.Config, orders usecase.OrderStatusWriter) sarama.ConsumerGroup {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		logging.New("kafka").Error("consumer group unavailable, status sync disabled", "err", err)
		return nil
	}

	h := kafka.NewPaymentStatusHandler(orders)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.Topic}, h.Handle)
	consumer.Logger = logging.New("kafka")

	go func() {
		if err := consumer.Start(context.Background()); err != nil && err != context.Canceled {
			logging.New("kafka").Error("consumer stopped", "err", err)
		}
	}()
	return grp
}
