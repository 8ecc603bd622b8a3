//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// handler answers a Function URL request. Every body field is optional and
// defaults to the reference craft:
//
//	{"minProgress": 5720, "condition": "Normal", "maxCP": 661,
//	 "maxDurability": 70, "pruning": "heuristic", "catalog": {"actions": [...]}}
func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}
	if body == "" {
		body = "{}"
	}
	if !gjson.Valid(body) {
		return errResp(400, "invalid JSON body")
	}

	cfg := DefaultConfig()
	req := gjson.Parse(body)
	if v := req.Get("minProgress"); v.Exists() {
		cfg.MinProgress = int(v.Int())
	}
	if v := req.Get("maxCP"); v.Exists() {
		cfg.MaxCP = int(v.Int())
	}
	if v := req.Get("maxDurability"); v.Exists() {
		cfg.MaxDurability = int(v.Int())
	}
	if v := req.Get("condition"); v.Exists() {
		cfg.Condition = v.String()
	}
	if v := req.Get("pruning"); v.Exists() {
		cfg.Pruning = v.String()
	}
	if err := cfg.Validate(); err != nil {
		return errResp(400, err.Error())
	}

	cat := DefaultCatalog()
	if v := req.Get("catalog"); v.Exists() {
		var err error
		if cat, err = parseCatalogJSON(v.Raw, cat); err != nil {
			return errResp(400, err.Error())
		}
	}

	runID := uuid.NewString()
	out, err := runCraft(ctx, cat, cfg)
	if err != nil && !errors.Is(err, ErrInfeasible) {
		return errResp(500, err.Error())
	}
	out.Result.RunID = runID
	newLogger("lambda").Info("solve.done", "run_id", runID, "states", out.Result.States,
		"feasible", out.Result.Feasible, "time_ms", out.Result.TimeMs)

	respJSON, _ := json.Marshal(out.Result)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	initLogging(slog.LevelInfo, "json", nil)
	lambda.Start(handler)
}
