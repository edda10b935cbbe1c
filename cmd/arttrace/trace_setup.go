package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"arttrace/internal/trace"
)

type tracingSession struct {
	tracer    trace.Tracer
	span      *trace.Span
	heartbeat *trace.Heartbeat
	stderr    io.Writer
}

// setupTracing inspects trace-related flags, initializes the tracer and
// opens the driver span carrying the run id.
func setupTracing(cmd *cobra.Command, stderr io.Writer) (*tracingSession, error) {
	flags := cmd.Flags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace alone means phase-level tracing.
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	if traceOutput == "" && mode != trace.ModeRing {
		traceOutput = "-"
	}

	cfg := trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	}
	if traceOutput == "-" {
		cfg.Output = stderr
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx, span := trace.Start(trace.WithTracer(cmd.Context(), tracer), trace.ScopeDriver, cmd.CommandPath())
	span.WithExtra("run", trace.NewRunID())
	cmd.SetContext(ctx)

	session := &tracingSession{tracer: tracer, span: span, stderr: stderr}
	if heartbeatInterval > 0 {
		session.heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	}
	return session, nil
}

func (s *tracingSession) close(runErr error) {
	if s.heartbeat != nil {
		s.heartbeat.Stop()
	}
	detail := ""
	if runErr != nil {
		detail = runErr.Error()
	}
	s.span.End(detail)

	if runErr != nil {
		if ring, ok := trace.FindRing(s.tracer); ok {
			if file, ok := ring.LastFile(); ok {
				fmt.Fprintf(s.stderr, "trace: last trace file touched: %s\n", file)
			}
			fmt.Fprintln(s.stderr, "trace: last events before failure:")
			if err := ring.Dump(s.stderr, trace.FormatText); err != nil {
				fmt.Fprintf(s.stderr, "trace: dump error: %v\n", err)
			}
		}
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(s.stderr, "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(s.stderr, "trace: close error: %v\n", err)
	}
}
