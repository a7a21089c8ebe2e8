// Package batch provides chunked, bounded-concurrency fetching of order
// detail records.
//
// The order list endpoint returns only minimal stubs; full records come from
// a per-order detail endpoint. Fetching them one by one is slow, fetching
// them all at once hammers the trade API. The orchestrator splits the id
// list into fixed-size chunks, resolves each chunk's ids concurrently, and
// pauses briefly between chunks to bound the request rate.
//
// Example usage:
//
//	orch := batch.New(tradeClient, cache, tokens, batch.DefaultConfig())
//	details, err := orch.FetchAllDetails(ctx, ids)
//
// The orchestrator:
//   - Consults the detail cache before every fetch (read-through)
//   - Processes chunks sequentially, ids within a chunk concurrently
//   - Drops failed ids from the result instead of failing the batch
//   - Waits a fixed pacing delay between chunks
//
// Results are returned in completion order within each chunk; callers that
// need the original order must re-sort against their id list.
package batch
