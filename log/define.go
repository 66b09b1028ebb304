// Package log 日志(基于zap)与调用链追踪结构定义
package log

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pborman/uuid"
)

type contextKey string

// CONTEXT_TRANSKEY_TRACE 在context中传递TraceSpan的key
const CONTEXT_TRANSKEY_TRACE contextKey = "trace"

// ContextValueTrace get TraceSpan from context
func ContextValueTrace(ctx context.Context) TraceSpan {
	traceSpan, ok := ctx.Value(CONTEXT_TRANSKEY_TRACE).(TraceSpan)
	if !ok {
		return nil
	}
	return traceSpan
}

// ContextWithTrace 把TraceSpan放入context
func ContextWithTrace(ctx context.Context, span TraceSpan) context.Context {
	return context.WithValue(ctx, CONTEXT_TRANSKEY_TRACE, span)
}

// TraceSpan A SpanID refers to a single span.
type TraceSpan interface {

	// Trace is the root ID of the tree that contains all of the spans
	// related to this one.
	TraceID() string

	// Span is an ID that probabilistically uniquely identifies this
	// span.
	SpanID() string

	// 生产子TraceSpan
	ExtractSpan() TraceSpan

	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	String() string
}

// NewTraceSpan 新的根TraceSpan; trace为空时随机生成
func NewTraceSpan(trace string) TraceSpan {
	if trace == "" {
		trace = uuid.NewRandom().String()
	}
	return &TraceSpanImp{
		Trace: trace,
		Span:  uuid.NewRandom().String(),
	}
}

// TraceSpanImp TraceSpanImp
type TraceSpanImp struct {
	Trace string `json:"Trace"`
	Span  string `json:"Span"`
}

// TraceID TraceID
func (t *TraceSpanImp) TraceID() string {
	return t.Trace
}

// SpanID SpanID
func (t *TraceSpanImp) SpanID() string {
	return t.Span
}

// ExtractSpan ExtractSpan
func (t *TraceSpanImp) ExtractSpan() TraceSpan {
	return &TraceSpanImp{
		Trace: t.Trace,
		Span:  uuid.NewRandom().String(),
	}
}
func (t *TraceSpanImp) Marshal() ([]byte, error) {
	return jsoniter.Marshal(t)
}
func (t *TraceSpanImp) Unmarshal(bytes []byte) error {
	return jsoniter.Unmarshal(bytes, t)
}
func (t *TraceSpanImp) String() string {
	return fmt.Sprintf("[%s] [%s]", t.Trace, t.Span)
}
