/*
Package stepflow implements the protocol core of a step-by-step
workflow debugger: classification of server-pushed debug messages,
pure per-kind handlers, and a session state reducer.

# Overview

A workflow runner pushes loosely typed JSON messages over a
message-oriented transport while a flow executes under the debugger:
input requests, event notifications, stats, breakpoint confirmations,
and free-text print output carrying lifecycle markers. stepflow turns
that stream into deterministic state transitions:

	raw JSON -> Processor -> per-kind Handler -> Result -> Session

Handlers are pure functions of the message payload. All side effects
(state mutation, logging, metrics, transcript persistence) happen in
the Session when a Result is applied.

# Basic Usage

	session := stepflow.New(
	    stepflow.WithFlowID("flow-42"),
	    stepflow.WithLogger(logger),
	)

	var raw map[string]any
	if err := json.Unmarshal(frame, &raw); err != nil {
	    // not JSON, not ours
	}
	result := session.Process(raw)
	if result == nil {
	    // not a step-by-step message: hand to the chat pipeline
	}

	state := session.Snapshot()
	fmt.Println(len(state.EventHistory), state.LastError)

When the result carries a control action the caller reacts, typically
by answering an input request:

	if a := result.Action; a != nil && a.Type == stepflow.ActionInputRequestReceived {
	    resp := message.NewControlResponse(a.RequestID, message.CommandStep)
	    // marshal and send resp over the transport
	}

# Processing Results

Process returns nil for messages outside the step-by-step channel so
callers can fall back to generic chat processing. Structural problems
in recognized messages never panic and never return Go errors: they
surface as Result.Err and are recorded on the session as LastError.
Workflow termination is detected from print markers and reported as a
workflow_ended control action with a reason (completed, user_stopped,
error).

# Event Deduplication

The runner can deliver the same event more than once. AddEvent drops
events whose key was already seen, with keys computed by a
configurable KeyFunc over a bounded FIFO cache. History is kept
most-recent-first and is not capped here; display truncation is the
consumer's concern.

# Thread Safety

  - Session IS safe for concurrent use (internally locked), but the
    protocol assumes one message at a time per session
  - Processor and all Handlers are stateless and safe for concurrent use
  - Results and Snapshots are values; Snapshot copies slices but shares
    event payload maps, which must be treated as read-only

# Subpackages

  - message: kind taxonomy, guard predicates, control responses
  - extract: participant/content/lifecycle-marker extraction
  - config: session configuration from YAML/JSON
  - observability: logging, metrics, and tracing helpers
  - history: transcript persistence (memory, SQLite)
  - client: minimal WebSocket feed
*/
package stepflow
