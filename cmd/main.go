package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-session/directory"
	"chat-session/domain"
	"chat-session/infrastructure/remote"
	"chat-session/infrastructure/stream"
	"chat-session/internal"
	"chat-session/repositories"
	"chat-session/runtime/workers"
	"chat-session/session"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the session lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	//  Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Backend & Event Feed
	current := domain.User{UserID: config.UserID, Nickname: config.Nickname}
	client := remote.NewClient(config.BaseURL, config.APIToken, config.RequestTimeout, log)
	feed, err := stream.Dial(ctx, config.EventStreamURL, log)
	if err != nil {
		return fmt.Errorf("event stream dial failed: %w", err)
	}
	defer func() { _ = feed.Close() }()

	// 5. Channel Directory
	cache := repositories.NewChannelRepository(db, log)
	dir := directory.NewDirectory(log, client, cache, current, config.ChannelPageSize)

	page, err := dir.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("listing channels failed: %w", err)
	}
	printChannels(page.Channels)
	if len(page.Channels) == 0 {
		color.Yellow.Println("No channels to join, exiting.")
		return nil
	}

	// 6. Session & Supervision
	tracker := session.NewTracker(log, config.MaxTrackedOperations, config.OperationRetention)
	sess := session.NewChannelSession(log, client, feed, current, config.HistoryPageSize, tracker)

	target := page.Channels[0]
	history, err := sess.Join(ctx, target)
	if err != nil {
		return fmt.Errorf("joining %s failed: %w", target.URL, err)
	}
	defer func() { _ = sess.Leave(context.Background()) }()
	color.Green.Printf("Joined %s as %s (%s), %d messages\n",
		target.Name, current.UserID, sess.MyRole(), len(history))

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(feed, workers.NewIngestWorker(log, sess))
	go sup.Run(ctx)
	defer sup.Stop()

	sess.Notify(func() {
		for _, message := range sess.Snapshot() {
			printMessage(message)
		}
	})

	if _, err := sess.Send(ctx, fmt.Sprintf("%s connected at %s", current.UserID, time.Now().UTC().Format(time.RFC3339))); err != nil {
		log.Warn("Greeting failed", "error", err)
	}

	// 7. Wait for Stop
	<-ctx.Done()
	log.Info("Shutting down gracefully...")
	return nil
}

func printChannels(channels []domain.Channel) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Channel", "Name", "Members", "Last Active"})
	for _, channel := range channels {
		table.Append([]string{
			channel.URL,
			channel.Name,
			fmt.Sprintf("%d", len(channel.Members)),
			channel.LastActiveAt.Format(time.RFC3339),
		})
	}
	table.Render()
}

func printMessage(message domain.Message) {
	prefix := color.Gray.Sprintf("[%s]", message.CreatedAt.Format("15:04:05"))
	switch message.State {
	case domain.StatePending:
		color.Yellow.Printf("%s %s: %s (sending...)\n", prefix, message.Sender.UserID, message.Body)
	case domain.StateFailed:
		color.Red.Printf("%s %s: %s (failed)\n", prefix, message.Sender.UserID, message.Body)
	default:
		fmt.Printf("%s %s: %s\n", prefix, message.Sender.UserID, message.Body)
	}
}
