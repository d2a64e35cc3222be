package tee

var TrimTrailing = trimTrailing
