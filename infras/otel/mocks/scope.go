package mocks

import "litrato/infras/otel"

// scope drops everything. Tests that care about tracing assert on the
// returned errors instead.
type scope struct{}

func NewScope() otel.Scope {
	return scope{}
}

func (scope) End() {}
func (scope) TraceError(error) {}
func (scope) TraceIfError(*error) {}
func (scope) AddEvent(string) {}
func (scope) SetAttribute(string, any) {}
func (scope) SetAttributes(map[string]any) {}
