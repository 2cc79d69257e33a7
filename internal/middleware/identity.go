package middleware

// identity.go centralizes how middleware resolves "who is making this
// request". JWTAuth stores the raw sub claim under "user_id"; numeric
// JWT claims decode as float64, so several representations are
// accepted. Unauthenticated requests resolve to "anon" so rate-limit
// keys still partition by IP.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID returns a stable string form of the authenticated user
// for use in cache and rate-limit keys.
func currentUserID(c echo.Context) string {
    v := c.Get("user_id")
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        return strconv.FormatUint(uint64(t), 10)
    case uint64:
        return strconv.FormatUint(t, 10)
    case int64:
        return strconv.FormatInt(t, 10)
    case int:
        return strconv.Itoa(t)
    }
    return "anon"
}
