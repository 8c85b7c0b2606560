package fetch

// Package fetch retrieves eligible game servers from the BattleMetrics
// listing API. Pagination is capped, failures end pagination early, and
// whatever records earlier pages delivered are kept (partial success).
// Records outside the EU country allow-list are dropped before they reach
// the rest of the app.
