// Package visit serves POST /process_transcription: it saves the uploaded
// audio, transcribes it, extracts the visit JSON with the LLM and hands the
// result to the document generator.
//
// Responses keep the bodies existing clients expect:
//
//	400 {"error":"No audio file provided"}
//	500 Transcription failed or empty            (text/plain)
//	500 No valid JSON found in the response.     (text/plain)
//	500 {"error":"Error occurred: <message>"}
//	200 {"status":"PDF generated successfully", ...}
package visit
