package tape

import _ "modernc.org/sqlite"

const driverName = "sqlite"
