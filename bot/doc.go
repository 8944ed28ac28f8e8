// Package bot contains the Discord worker and the command pipeline.
//
// It provides three pieces:
//   - Worker: owns the Discord session lifecycle. It connects with the
//     message-content intent, forwards inbound messages to the Router, runs the
//     keep-alive task while the session is ready, and exposes a readiness flag
//     for the health endpoint.
//   - Router: recognizes the !dodgers command, fetches today's schedule, and
//     replies to the triggering channel. Every failure path ends in a fixed
//     user-visible message; no error escapes a message handler.
//   - KeepAlive: a periodic self-lookup against the Discord API whose only job
//     is to generate outbound traffic so the hosting platform does not evict
//     the process for idleness.
//
// Credentials: the session requires a bot token (DISCORD_BOT_TOKEN) whose
// application has the privileged message-content intent enabled.
package bot
