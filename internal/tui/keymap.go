package tui

const (
	KeyQuit       = "q"
	KeyCtrlC      = "ctrl+c"
	KeyToggle     = " "
	KeyReset      = "r"
	KeyPomodoro   = "1"
	KeyShortBreak = "2"
	KeyLongBreak  = "3"
	KeyTakeBreak  = "b"
)
