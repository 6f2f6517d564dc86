package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"connect-chat/channel"
	"connect-chat/domain"
	"connect-chat/domain/event"
	chaterrors "connect-chat/errors"
	"connect-chat/moderation"
	"connect-chat/observability"
	"connect-chat/participant"
	"connect-chat/repositories"
	"connect-chat/runtime/workers"
	"connect-chat/session"
	"connect-chat/sink"
	"connect-chat/transcript"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatctl terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the session lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the channel and background workers.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	maskChar, err := config.CharacterRune()
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Local storage (BadgerDB + Bluge)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		// Defer ensures the database lock is released and buffers are flushed before the function returns.
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	transcriptRepo := repositories.NewTranscriptRepository(db, logger, lo.ToPtr(config.PageSize))
	searchIndex := repositories.NewSearchIndex(blugeWriter, logger, config.PageSize)

	// 4. Session negotiation
	redactor, err := moderation.NewRedactor(config.DenyListed(), maskChar)
	if err != nil {
		return exitConfig, fmt.Errorf("deny list error: %w", err)
	}

	client := participant.NewClient(config.Endpoint, config.HTTPTimeout, logger)
	negotiator := session.NewNegotiator(client, config.TokenTTL, logger)

	credentials, err := negotiator.Negotiate(ctx, config.ParticipantToken)
	if err != nil {
		return exitRuntime, fmt.Errorf("negotiation failed: %w", err)
	}

	// 5. Channel, projections and supervision
	ch := channel.New(config.ContactID, credentials, client, redactor,
		config.BufferSize, config.MaxReconnectAttempts, config.MaxReconnectInterval, logger)

	reconciler := transcript.NewReconciler(config.ContactID, logger)
	pager := transcript.NewPager(client, func() string {
		return ch.Credentials().ConnectionToken
	}, config.PageSize)

	stats := observability.NewChannelStats(logger)
	telemetryChan := make(chan event.Event, config.BufferSize)

	storeSink := sink.NewStoreSink(transcriptRepo)
	searchSink := sink.NewSearchSink(searchIndex, config.SearchFlushEvery)

	fanout := workers.NewItemFanout(logger, ch.Events(), telemetryChan).Add(
		sink.NewTranscriptSink(reconciler),
		storeSink,
		searchSink,
		sink.NewLogSink(logger),
	)

	sup := workers.NewSupervisor(logger, telemetryChan, config.RestartInterval)
	sup.Add(
		ch,
		fanout,
		// History pages go through the same store and search sinks as the
		// live stream, so persistence covers the merged transcript.
		transcript.NewBackfill(pager, reconciler, logger, storeSink, searchSink),
		workers.NewTokenRefresher(negotiator, ch, config.ParticipantToken, negotiator.RefreshAt, logger),
		workers.NewTelemetryWorker(logger, stats, telemetryChan, config.MetricInterval),
		workers.NewQueueDepthWorker(logger, []workers.SampledQueue{
			workers.Sampled("events", ch.Events()),
			workers.Sampled("telemetry", telemetryChan),
		}, telemetryChan, config.MetricInterval),
	)

	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// 6. Interactive prompt
	// The prompt owns stdin; it returns when the user quits or stdin closes.
	promptDone := make(chan error, 1)
	go func() {
		promptDone <- prompt(ctx, ch, reconciler, searchIndex, client, stats, config.ContactID, logger)
	}()

	// 7. Wait for Stop or prompt exit
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-promptDone:
		if err != nil {
			logger.Error("Prompt failed", "err", err)
		}
	}

	// 8. Final Cleanup (Graceful Shutdown)
	// Disconnect tells the control plane the participant left, then the
	// supervisor drains the remaining workers.
	logger.Info("Shutting down gracefully...")
	if err := ch.Disconnect(context.Background()); err != nil && !errors.Is(err, chaterrors.ErrChannelClosed) {
		logger.Warn("Disconnect failed", "err", err)
	}
	sup.Stop()
	<-supDone
	if err := searchIndex.Flush(); err != nil {
		logger.Warn("Final index flush failed", "err", err)
	}
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

// prompt reads commands from stdin until the user quits or stdin closes.
func prompt(ctx context.Context, ch *channel.EventChannel, reconciler *transcript.Reconciler,
	searchIndex *repositories.SearchIndex, client *participant.Client,
	stats *observability.ChannelStats, contactID string, logger *slog.Logger) error {

	color.Cyan.Println("Session open. Type a message, or /transcript, /search <query>, /attach <path>, /stats, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue

		case line == "/quit":
			return nil

		case line == "/transcript":
			renderTranscript(reconciler.Snapshot(), reconciler.Backfilled())

		case line == "/stats":
			renderStats(stats.Latest())

		case strings.HasPrefix(line, "/search "):
			query := strings.TrimSpace(strings.TrimPrefix(line, "/search "))
			if err := searchIndex.Flush(); err != nil {
				color.Red.Println("flush failed:", err)
				continue
			}
			hits, total, err := searchIndex.Search(ctx, query, contactID, 0)
			if err != nil {
				color.Red.Println("search failed:", err)
				continue
			}
			renderHits(query, hits, total)

		case strings.HasPrefix(line, "/attach "):
			path := strings.TrimSpace(strings.TrimPrefix(line, "/attach "))
			if err := sendAttachment(ctx, ch, client, path); err != nil {
				color.Red.Println("attachment failed:", err)
				continue
			}
			color.Green.Println("attachment sent:", path)

		default:
			started := time.Now()
			result, err := ch.Send(ctx, line)
			stats.RecordSend(time.Since(started), err != nil)
			if errors.Is(err, chaterrors.ErrChannelClosed) {
				color.Yellow.Println("session is closed")
				return nil
			}
			if err != nil {
				color.Red.Println("send failed:", err)
				continue
			}
			logger.Debug("Message accepted", "id", result.ID)
		}
	}
	return scanner.Err()
}

// sendAttachment runs the three legged upload: reserve a ticket, PUT the
// bytes to the pre-signed URL, then confirm so the item enters the transcript.
func sendAttachment(ctx context.Context, ch *channel.EventChannel, client *participant.Client, path string) error {
	upload, err := participant.DescribeUpload(path)
	if err != nil {
		return err
	}

	connectionToken := ch.Credentials().ConnectionToken
	ticket, err := client.StartAttachmentUpload(ctx, connectionToken, upload)
	if err != nil {
		return err
	}

	if err := participant.UploadFile(ctx, ticket, path); err != nil {
		return err
	}
	return client.CompleteAttachmentUpload(ctx, connectionToken, []string{ticket.AttachmentID})
}

func renderTranscript(items []domain.TranscriptItem, backfilled bool) {
	if !backfilled {
		color.Yellow.Println("(history backfill still running, view may be partial)")
	}
	for _, item := range items {
		stamp := item.AbsoluteTime.Format("15:04:05")
		switch item.Role {
		case domain.RoleCustomer:
			color.Green.Printf("%s %s: %s\n", stamp, item.DisplayName, item.Content)
		case domain.RoleAgent:
			color.Cyan.Printf("%s %s: %s\n", stamp, item.DisplayName, item.Content)
		default:
			color.Gray.Printf("%s [%s] %s\n", stamp, item.Kind, item.Content)
		}
	}
	color.White.Printf("%d item(s)\n", len(items))
}

func renderHits(query string, hits []domain.SearchHit, total uint64) {
	table := tableFor([]string{"Item ID", "Contact", "Lang"})
	for _, hit := range hits {
		table.Append([]string{hit.ItemID, hit.ContactID, hit.Lang})
	}
	color.Cyan.Printf("%d hit(s) for %q\n", total, query)
	table.Render()
}

func tableFor(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func renderStats(snapshot observability.ChannelSnapshot) {
	table := tableFor([]string{"Items", "Items/s", "Reconnects", "Sends", "Failures", "Avg send ms", "Alloc MB"})
	table.Append([]string{
		fmt.Sprintf("%d", snapshot.ItemsReceived),
		fmt.Sprintf("%.2f", snapshot.ItemsPerSecond),
		fmt.Sprintf("%d", snapshot.Reconnects),
		fmt.Sprintf("%d", snapshot.Sends),
		fmt.Sprintf("%d", snapshot.SendFailures),
		fmt.Sprintf("%.2f", snapshot.AvgSendMs),
		fmt.Sprintf("%d", snapshot.AllocMemMb),
	})
	table.Render()
}
