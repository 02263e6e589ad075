package compose

// Retain builds a retain node.  At most one of RetainOptions.Field,
// .Filter, or .Catch may be set; the desugaring order is filter ->
// catch -> plain, as specified by spec.md §4.1.
//
// Decision (recorded in DESIGN.md): `retain(body, {filter})` is
// implemented as `sequence(function(filter), retain(body))` -- filter
// reshapes the incoming params, and body (and the final {params,
// result} pairing) run against that reshaped value.  This is the
// simplest reading of "captures filter(params), then retains body
// against those captured params" that composes out of existing
// primitives.
func Retain(body interface{}, options ...*RetainOptions) (*Task, error) {
	opt, err := singleOption("retain", options)
	if err != nil {
		return nil, err
	}

	var field string
	var filter interface{}
	var catch bool
	if opt != nil {
		field, filter, catch = opt.Field, opt.Filter, opt.Catch
	}
	if optsCount(field, filter, catch) > 1 {
		return nil, construction("retain", "field, filter, and catch are mutually exclusive", opt)
	}

	if filter != nil {
		return retainFilter(body, filter)
	}
	if catch {
		return retainCatch(body)
	}

	bt, err := TaskOf(body)
	if err != nil {
		return nil, err
	}
	t := &Task{Kind: KindRetain, Body: bt, Field: field}
	t.hoist(bt)
	return t, nil
}

func retainFilter(body, filter interface{}) (*Task, error) {
	ft, err := Function(filter)
	if err != nil {
		return nil, err
	}
	plain, err := Retain(body)
	if err != nil {
		return nil, err
	}
	return Sequence(ft, plain)
}

var (
	wrapResultCode   = `(params) => ({result: params})`
	unwrapResultCode = `(params) => ({params: params.params, result: params.result.result})`
)

func retainCatch(body interface{}) (*Task, error) {
	wrap, err := Function(wrapResultCode)
	if err != nil {
		return nil, err
	}
	fin, err := Finally(body, wrap)
	if err != nil {
		return nil, err
	}
	plain, err := Retain(fin)
	if err != nil {
		return nil, err
	}
	unwrap, err := Function(unwrapResultCode)
	if err != nil {
		return nil, err
	}
	return Sequence(plain, unwrap)
}

// Repeat desugars to let({count: n}, while(function("()=>count-->0"),
// sequence(xs...))), exactly as spec.md §3.1 specifies.
func Repeat(n int, xs ...interface{}) (*Task, error) {
	body, err := Sequence(xs...)
	if err != nil {
		return nil, err
	}
	test, err := Function("()=>count-->0")
	if err != nil {
		return nil, err
	}
	loop, err := While(test, body)
	if err != nil {
		return nil, err
	}
	return Let(map[string]interface{}{"count": n}, loop)
}

var (
	retryRestoreCode = `(params) => params.params`
	retryProjectCode = `(params) => params.result`
)

func retryTestCode() string {
	return `(params) => {
  var r = params && params.result;
  if (r && typeof r === "object" && r.error !== undefined && count > 0) {
    count = count - 1;
    return true;
  }
  return false;
}`
}

// Retry desugars per spec.md §3.1: a let({count: n}) wrapping an
// initial retain(seq(xs...), {catch:true}), a while loop that
// re-attempts while the retained result carries an error and count
// remains, and a final projection of the result.
func Retry(n int, xs ...interface{}) (*Task, error) {
	if n < 0 {
		return nil, construction("retry", "count must be non-negative", n)
	}

	attempt := func() (*Task, error) {
		body, err := Sequence(xs...)
		if err != nil {
			return nil, err
		}
		return Retain(body, &RetainOptions{Catch: true})
	}

	first, err := attempt()
	if err != nil {
		return nil, err
	}
	again, err := attempt()
	if err != nil {
		return nil, err
	}

	test, err := Function(retryTestCode())
	if err != nil {
		return nil, err
	}
	restore, err := Function(retryRestoreCode)
	if err != nil {
		return nil, err
	}
	loopBody, err := Finally(restore, again)
	if err != nil {
		return nil, err
	}
	loop, err := While(test, loopBody)
	if err != nil {
		return nil, err
	}
	project, err := Function(retryProjectCode)
	if err != nil {
		return nil, err
	}

	full, err := Sequence(first, loop, project)
	if err != nil {
		return nil, err
	}
	return Let(map[string]interface{}{"count": n}, full)
}
