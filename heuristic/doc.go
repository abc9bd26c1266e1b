// Package heuristic provides a learned wikisearch.Heuristic over page titles.
//
// A title is embedded as the average of the word vectors of its tokens. The
// embeddings of the current and destination titles are concatenated and fed
// to a small feed-forward regression model whose output, rounded to an
// integer, is the estimated number of links between the two pages. The
// estimate is not admissible.
package heuristic
