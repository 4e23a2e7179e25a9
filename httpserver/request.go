package httpserver

import (
	"errors"
	"strconv"
	"strings"

	"moviebuffs/movie"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ListMoviesRequest struct {
	Genre string   `query:"genre"`
	Page  int      `query:"page" validate:"min=0,max=2147483647"`
	Size  int      `query:"size" validate:"min=0,max=2147483647"`
	Sort  []string `query:"sort"`
}

// bindListMoviesRequest reads the listing parameters from the query string.
// Values that do not parse or fall outside the 32-bit range are left at
// their zero value so the paging defaults apply to them: size=3000000000
// yields the default size rather than the maximum.
func bindListMoviesRequest(c echo.Context, v *CustomValidator) ListMoviesRequest {
	req := ListMoviesRequest{
		Genre: strings.TrimSpace(c.QueryParam("genre")),
		Page:  queryInt(c, "page"),
		Size:  queryInt(c, "size"),
		Sort:  c.QueryParams()["sort"],
	}

	var verrs validator.ValidationErrors
	if err := v.validate.Struct(req); errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.StructField() {
			case "Page":
				req.Page = 0
			case "Size":
				req.Size = 0
			}
		}
	}
	return req
}

func (r ListMoviesRequest) ToPageRequest() movie.PageRequest {
	return movie.PageRequest{
		Page: r.Page,
		Size: r.Size,
		Sort: parseSort(r.Sort),
	}
}

// parseSort reads sort parameters of the form prop[,prop...][,asc|desc].
// A trailing direction applies to every property of the same value.
func parseSort(values []string) movie.Sort {
	var s movie.Sort
	for _, value := range values {
		parts := strings.Split(value, ",")
		direction := movie.ASC
		if d, ok := movie.ParseDirection(parts[len(parts)-1]); ok {
			direction = d
			parts = parts[:len(parts)-1]
		}
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				s = append(s, movie.Order{Property: p, Direction: direction})
			}
		}
	}
	return s
}

func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.QueryParam(name)))
	if err != nil {
		return 0
	}
	return n
}
