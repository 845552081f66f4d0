// Package extraction turns a visit transcript into the structured JSON the
// document generator consumes: it builds the extraction prompt, asks the LLM,
// and cuts the JSON object out of the free-form answer.
package extraction
