package models

type ExitTrigger string

const (
	ExitTriggerStopLoss   ExitTrigger = "SL"
	ExitTriggerTakeProfit ExitTrigger = "TP"
	ExitTriggerSignal     ExitTrigger = "SIGNAL"
)
