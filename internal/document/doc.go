// Package document renders an extraction result into the one-page visit
// prescription PDF and uploads it to object storage.
//
// A Generator reads the extraction JSON file, fabricates the follow-up
// appointment and patient number, fills the HTML layout, converts it to
// {patient_number}.pdf in the output directory and uploads it under
// pdfs/{patient_number}.pdf. A failed upload does not fail generation; it is
// reported on the returned Document.
package document
