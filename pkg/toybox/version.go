package toybox

// Version is the toybox release version.
const Version = "0.1.0"
