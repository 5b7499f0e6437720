package model

// RetweetWeight is the fixed weight of a retweet relative to a favorite.
// Derived once from the roughly 2:1 ratio of total favorites to total
// retweets on the source account; a configuration constant, not a
// statistical parameter re-derived per run.
const RetweetWeight = 2

// Score computes the popularity score for a record.
func Score(favorites, retweets int) int {
	return favorites + RetweetWeight*retweets
}
