// Package export serializes generated quizzes for downstream tools: the
// quiz-management import table as CSV or XLSX, the rich text as a DOCX
// document, and all of them together as a ZIP bundle.
package export
