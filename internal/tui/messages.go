package tui

// dataChangedMsg is emitted by the upload panel's success callback. The page
// answers it by bumping the refresh signal.
type dataChangedMsg struct{}
