package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aistaff/platform/internal/capability/domain"
)

// textProcessingHandler echoes the input text with word and character counts.
func textProcessingHandler(input map[string]any) (map[string]any, error) {
	text, _ := input["text"].(string)
	return map[string]any{
		"processed_text": "Processed: " + text,
		"word_count":     len(strings.Fields(text)),
		"char_count":     len(text),
	}, nil
}

// dataAnalysisHandler summarizes a list of values. Numeric lists get count,
// sum and average; anything else just gets a count.
func dataAnalysisHandler(input map[string]any) (map[string]any, error) {
	data, _ := input["data"].([]any)
	if len(data) == 0 {
		return nil, errors.New("no data provided")
	}

	sum := 0.0
	numeric := true
	for _, value := range data {
		number, ok := toFloat(value)
		if !ok {
			numeric = false
			break
		}
		sum += number
	}

	if !numeric {
		return map[string]any{
			"count": len(data),
			"type":  "mixed or non-numeric data",
		}, nil
	}

	return map[string]any{
		"count":   len(data),
		"sum":     sum,
		"average": sum / float64(len(data)),
	}, nil
}

// toFloat normalizes the numeric types a JSON decoder or caller may supply.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// customerServiceHandler produces a canned acknowledgement for a query.
func customerServiceHandler(input map[string]any) (map[string]any, error) {
	query, _ := input["query"].(string)
	return map[string]any{
		"response": fmt.Sprintf("Thank you for your query: '%s'. Our team will assist you shortly.", query),
	}, nil
}

// codeGenerationHandler emits a template program in the requested language.
// Python is the default, anything else gets a JavaScript template.
func codeGenerationHandler(input map[string]any) (map[string]any, error) {
	language, ok := input["language"].(string)
	if !ok || language == "" {
		language = "python"
	}
	prompt, _ := input["prompt"].(string)

	var code string
	if language == "python" {
		code = fmt.Sprintf(
			"# Generated from: %s\ndef main():\n    print('Hello, AI Staff!')\n\nif __name__ == '__main__':\n    main()",
			prompt,
		)
	} else {
		code = fmt.Sprintf(
			"// Generated from: %s\nfunction main() {\n    console.log('Hello, AI Staff!');\n}\n\nmain();",
			prompt,
		)
	}

	return map[string]any{
		"code":     code,
		"language": language,
	}, nil
}

// automationHandler acknowledges an automation request.
func automationHandler(input map[string]any) (map[string]any, error) {
	task, _ := input["task"].(string)
	return map[string]any{
		"result": "Automated task: " + task,
		"status": "completed",
	}, nil
}

// builtinHandlers returns the fixed capability set in registration order.
func builtinHandlers() []struct {
	name    string
	handler domain.Handler
} {
	return []struct {
		name    string
		handler domain.Handler
	}{
		{domain.TextProcessing, textProcessingHandler},
		{domain.DataAnalysis, dataAnalysisHandler},
		{domain.CustomerService, customerServiceHandler},
		{domain.CodeGeneration, codeGenerationHandler},
		{domain.Automation, automationHandler},
	}
}
