// Package app provides the main application logic for downloading audio
// from Tidal catalog references. It initializes the necessary components,
// such as the Tidal client, path templater, tag processor, and progress
// reporter, and orchestrates the download process.
package app
