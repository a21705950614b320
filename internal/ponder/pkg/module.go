package pkg

// ModuleName tags log entries emitted by the ponder core.
const ModuleName = "ponder"
