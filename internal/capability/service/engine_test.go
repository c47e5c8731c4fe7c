package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aistaff/platform/internal/capability/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestEngine() *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(NewRegistry(), logger)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	t.Run("Success_NamesInRegistrationOrder", func(t *testing.T) {
		assert.Equal(t, []string{
			domain.TextProcessing,
			domain.DataAnalysis,
			domain.CustomerService,
			domain.CodeGeneration,
			domain.Automation,
		}, registry.Names())
	})

	t.Run("Success_GetRegisteredHandler", func(t *testing.T) {
		handler, ok := registry.Get(domain.TextProcessing)
		assert.True(t, ok)
		assert.NotNil(t, handler)
		assert.True(t, registry.Has(domain.TextProcessing))
	})

	t.Run("Error_UnknownName", func(t *testing.T) {
		_, ok := registry.Get("time_travel")
		assert.False(t, ok)
		assert.False(t, registry.Has("time_travel"))
	})

	t.Run("Success_DuplicateRegistrationIgnored", func(t *testing.T) {
		registry := NewRegistry()
		registry.register(domain.TextProcessing, func(input map[string]any) (map[string]any, error) {
			return nil, nil
		})
		assert.Len(t, registry.Names(), 5)
	})
}

func TestEngine_Execute(t *testing.T) {
	engine := newTestEngine()

	t.Run("Success_TextProcessing", func(t *testing.T) {
		output, err := engine.Execute(domain.TextProcessing, map[string]any{"text": "hello world"})
		require.NoError(t, err)
		assert.Equal(t, "Processed: hello world", output["processed_text"])
		assert.Equal(t, 2, output["word_count"])
		assert.Equal(t, 11, output["char_count"])
	})

	t.Run("Success_DataAnalysisNumeric", func(t *testing.T) {
		output, err := engine.Execute(domain.DataAnalysis, map[string]any{
			"data": []any{1.0, 2.0, 3.0},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, output["count"])
		assert.Equal(t, 6.0, output["sum"])
		assert.Equal(t, 2.0, output["average"])
	})

	t.Run("Success_DataAnalysisMixed", func(t *testing.T) {
		output, err := engine.Execute(domain.DataAnalysis, map[string]any{
			"data": []any{1.0, "two", 3.0},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, output["count"])
		assert.Equal(t, "mixed or non-numeric data", output["type"])
	})

	t.Run("Success_CustomerService", func(t *testing.T) {
		output, err := engine.Execute(domain.CustomerService, map[string]any{"query": "help"})
		require.NoError(t, err)
		assert.Equal(t,
			"Thank you for your query: 'help'. Our team will assist you shortly.",
			output["response"])
	})

	t.Run("Success_CodeGenerationDefaultsToPython", func(t *testing.T) {
		output, err := engine.Execute(domain.CodeGeneration, map[string]any{"prompt": "hello"})
		require.NoError(t, err)
		assert.Equal(t, "python", output["language"])
		assert.Contains(t, output["code"], "# Generated from: hello")
	})

	t.Run("Success_CodeGenerationOtherLanguage", func(t *testing.T) {
		output, err := engine.Execute(domain.CodeGeneration, map[string]any{
			"language": "javascript",
			"prompt":   "hello",
		})
		require.NoError(t, err)
		assert.Equal(t, "javascript", output["language"])
		assert.Contains(t, output["code"], "// Generated from: hello")
	})

	t.Run("Success_Automation", func(t *testing.T) {
		output, err := engine.Execute(domain.Automation, map[string]any{"task": "backup"})
		require.NoError(t, err)
		assert.Equal(t, "Automated task: backup", output["result"])
		assert.Equal(t, "completed", output["status"])
	})

	t.Run("Error_UnknownCapability", func(t *testing.T) {
		output, err := engine.Execute("nonexistent_capability", map[string]any{})
		assert.ErrorIs(t, err, domain.ErrUnknownCapability)
		assert.Nil(t, output)
	})

	t.Run("Error_HandlerFailureIsIsolated", func(t *testing.T) {
		output, err := engine.Execute(domain.DataAnalysis, map[string]any{})

		var handlerErr *domain.HandlerError
		require.ErrorAs(t, err, &handlerErr)
		assert.Equal(t, domain.DataAnalysis, handlerErr.Capability)
		assert.Equal(t, "no data provided", handlerErr.Message)
		assert.Nil(t, output)
	})

	t.Run("Error_HandlerPanicIsIsolated", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		registry := NewRegistry()
		registry.register("explosive", func(input map[string]any) (map[string]any, error) {
			panic("boom")
		})
		engine := NewEngine(registry, logger)

		output, err := engine.Execute("explosive", map[string]any{})

		var handlerErr *domain.HandlerError
		require.ErrorAs(t, err, &handlerErr)
		assert.Equal(t, "explosive", handlerErr.Capability)
		assert.Equal(t, "boom", handlerErr.Message)
		assert.Nil(t, output)
	})
}

func TestEngine_RunTask(t *testing.T) {
	engine := newTestEngine()

	t.Run("Success_FirstMatchingCapability", func(t *testing.T) {
		task := &domain.Task{
			Type: domain.TextProcessing,
			Data: map[string]any{"text": "hi"},
		}

		output, err := engine.RunTask([]string{domain.TextProcessing, domain.Automation}, task)
		require.NoError(t, err)
		assert.Equal(t, 1, output["word_count"])
	})

	t.Run("Success_MatchRespectsStoredOrder", func(t *testing.T) {
		task := &domain.Task{
			Type: domain.Automation,
			Data: map[string]any{"task": "deploy"},
		}

		output, err := engine.RunTask([]string{domain.TextProcessing, domain.Automation}, task)
		require.NoError(t, err)
		assert.Equal(t, "Automated task: deploy", output["result"])
	})

	t.Run("Error_NoMatchingCapability", func(t *testing.T) {
		task := &domain.Task{
			Type: domain.DataAnalysis,
			Data: map[string]any{},
		}

		output, err := engine.RunTask([]string{domain.TextProcessing}, task)
		assert.ErrorIs(t, err, domain.ErrNoMatchingCapability)
		assert.Nil(t, output)
	})

	t.Run("Error_EmptyCapabilityList", func(t *testing.T) {
		task := &domain.Task{Type: domain.TextProcessing}

		_, err := engine.RunTask(nil, task)
		assert.ErrorIs(t, err, domain.ErrNoMatchingCapability)
	})
}
