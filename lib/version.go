package lib

// Version will contain globex build number on build
var Version = "dev"
